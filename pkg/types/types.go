package types

import (
	"time"
)

// ManifestEntry maps a template source file inside the configuration
// repository to a destination relative to the home directory root.
type ManifestEntry struct {
	// Source is the template path, relative to the repository root.
	Source string `yaml:"source"`

	// Destination is the output path, relative to the home directory.
	Destination string `yaml:"destination"`

	// Mode holds optional permission bits for the rendered file.
	// Applying it is best-effort and platform-conditional.
	Mode *uint32 `yaml:"mode,omitempty"`
}

// SecretSource identifies where a declared secret is resolved from.
type SecretSource string

const (
	// SecretSourceEnv resolves the secret from an environment variable.
	SecretSourceEnv SecretSource = "env"

	// SecretSourceFile resolves the secret from a file's contents.
	SecretSourceFile SecretSource = "file"
)

// SecretSpec declares a single named secret. Exactly one variant applies:
// From == SecretSourceEnv uses Key, From == SecretSourceFile uses Path.
type SecretSpec struct {
	From SecretSource `yaml:"from"`

	// Key names the environment variable for env secrets.
	Key string `yaml:"key,omitempty"`

	// Path locates the secret file, relative to the repository root
	// unless absolute or ~/ prefixed.
	Path string `yaml:"path,omitempty"`

	// Optional marks an env secret that may be unset without
	// aborting the run.
	Optional bool `yaml:"optional,omitempty"`
}

// ResolvedSecret holds a secret's plaintext value for the duration of
// a run. It is never persisted and must never be logged.
type ResolvedSecret struct {
	Name  string
	Value string
}

// RenderContext is the merged namespace handed to the template engine.
// Shared values live at the root; resolved secrets live under the
// reserved "secrets" key.
type RenderContext map[string]interface{}

// SecretsContextKey is the reserved top-level render context key that
// holds the resolved secret values.
const SecretsContextKey = "secrets"

// StagedArtifact is a rendered manifest entry written to the staging
// area, keyed by destination so reruns overwrite deterministically.
type StagedArtifact struct {
	// Source is the template the artifact was rendered from, kept so
	// outcomes can name the offending entry.
	Source string

	// Destination is the home-relative destination path.
	Destination string

	// StagedPath is the absolute path of the staged file.
	StagedPath string

	// Content is the rendered output.
	Content []byte

	// Mode holds optional permission bits carried from the manifest.
	Mode *uint32
}

// LinkStatus enumerates the terminal states of a single entry's commit.
type LinkStatus string

const (
	// LinkStatusLinked means the destination now holds the staged content.
	LinkStatusLinked LinkStatus = "linked"

	// LinkStatusBackedUp means a pre-existing file was displaced to a
	// backup before the staged content was placed.
	LinkStatusBackedUp LinkStatus = "backed-up-and-linked"

	// LinkStatusSkippedDryRun means the commit was simulated only.
	LinkStatusSkippedDryRun LinkStatus = "skipped-dry-run"

	// LinkStatusFailed means the entry could not be committed.
	LinkStatusFailed LinkStatus = "failed"
)

// LinkOutcome is the per-entry result of a run. It is produced once
// per entry and never mutated afterwards.
type LinkOutcome struct {
	Entry  ManifestEntry
	Status LinkStatus

	// BackupPath is set when a pre-existing file was displaced, either
	// for real (backed-up-and-linked) or as the would-be path reported
	// by a dry run. Failed outcomes also carry it when the backup move
	// completed before the failure, so manual recovery is possible.
	BackupPath string

	// Err carries the failure for LinkStatusFailed outcomes.
	Err error
}

// Succeeded reports whether the outcome counts toward a successful run.
func (o LinkOutcome) Succeeded() bool {
	return o.Status != LinkStatusFailed
}

// BackupRecord describes a pre-existing destination file displaced
// during linking. Backups are durable state left for user recovery.
type BackupRecord struct {
	OriginalPath string
	BackupPath   string
	Timestamp    time.Time
}

// RunState tracks the orchestrator's progress through a run.
type RunState string

const (
	RunStateInitializing     RunState = "initializing"
	RunStateResolvingSecrets RunState = "resolving-secrets"
	RunStateRendering        RunState = "rendering"
	RunStateStaging          RunState = "staging"
	RunStateLinking          RunState = "linking"
	RunStateCompleted        RunState = "completed"
	RunStateAborted          RunState = "aborted"
)

// ExecutionReport summarizes the operations performed during a run.
type ExecutionReport struct {
	// State is the terminal state of the run.
	State RunState

	// Outcomes holds one entry per manifest entry, in manifest order.
	Outcomes []LinkOutcome

	// Backups lists the files displaced during linking.
	Backups []BackupRecord

	// BrewCommands lists the Homebrew commands executed or planned.
	BrewCommands []string

	// DryRun indicates the run was executed in dry-run mode.
	DryRun bool
}

// Success reports whether every entry committed cleanly.
func (r *ExecutionReport) Success() bool {
	if r.State == RunStateAborted {
		return false
	}
	for _, outcome := range r.Outcomes {
		if !outcome.Succeeded() {
			return false
		}
	}
	return true
}

// FailedOutcomes returns the outcomes that did not commit.
func (r *ExecutionReport) FailedOutcomes() []LinkOutcome {
	var failed []LinkOutcome
	for _, outcome := range r.Outcomes {
		if !outcome.Succeeded() {
			failed = append(failed, outcome)
		}
	}
	return failed
}
