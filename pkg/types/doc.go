// Package types defines the core types and interfaces used throughout
// dotstrap. This includes the FS and Executor interfaces as well as data
// structures like ManifestEntry, StagedArtifact, and LinkOutcome.
package types
