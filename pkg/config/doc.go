// Package config loads the declarative inputs of a dotstrap run from
// the configuration repository: the template manifest, shared values,
// secret declarations, the optional Homebrew package spec, and the
// optional repo-level tool options.
package config
