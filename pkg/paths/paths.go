// Package paths provides centralized path handling for dotstrap.
// It resolves the target home directory, the staging and backup areas
// beneath it, and the XDG state location for logs.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/dotstrap/pkg/errors"
)

// Environment variable names
const (
	// EnvHome overrides the target home directory
	EnvHome = "DOTSTRAP_HOME"
)

// Default directories and files
// IMPORTANT: these constants define dotstrap's on-disk layout inside the
// target home directory. The staging and backup locations are durable
// state left for user inspection and recovery; renaming them orphans
// previously generated files.
const (
	// DotstrapDirName is the directory under the home root that holds
	// all dotstrap-managed state
	DotstrapDirName = ".dotstrap"

	// GeneratedDirName is the staging subdirectory for rendered output
	GeneratedDirName = "generated"

	// BackupsDirName is the subdirectory holding displaced files
	BackupsDirName = "backups"

	// LogFileName is the name of the log file
	LogFileName = "dotstrap.log"
)

// Paths provides centralized path management for a dotstrap run.
type Paths struct {
	home       string
	stagingDir string
	backupDir  string
}

// Options overrides the default staging and backup locations. Both are
// interpreted relative to the home root.
type Options struct {
	StagingDir string
	BackupDir  string
}

// New resolves the path set for the given home directory. An empty home
// falls back to DOTSTRAP_HOME and then the current user's home.
func New(home string) (*Paths, error) {
	return NewWithOptions(home, Options{})
}

// NewWithOptions resolves the path set with explicit layout overrides.
func NewWithOptions(home string, opts Options) (*Paths, error) {
	resolved, err := resolveHome(home)
	if err != nil {
		return nil, err
	}

	staging := opts.StagingDir
	if staging == "" {
		staging = filepath.Join(DotstrapDirName, GeneratedDirName)
	}
	backup := opts.BackupDir
	if backup == "" {
		backup = filepath.Join(DotstrapDirName, BackupsDirName)
	}

	return &Paths{
		home:       resolved,
		stagingDir: filepath.Join(resolved, staging),
		backupDir:  filepath.Join(resolved, backup),
	}, nil
}

func resolveHome(home string) (string, error) {
	if home != "" {
		return filepath.Clean(home), nil
	}
	if env := os.Getenv(EnvHome); env != "" {
		return filepath.Clean(env), nil
	}
	resolved, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrHomeNotFound, "failed to determine home directory")
	}
	return resolved, nil
}

// HomeDir returns the target home directory root.
func (p *Paths) HomeDir() string {
	return p.home
}

// StagingDir returns the generated-content staging directory.
func (p *Paths) StagingDir() string {
	return p.stagingDir
}

// BackupDir returns the directory holding displaced destination files.
func (p *Paths) BackupDir() string {
	return p.backupDir
}

// StagedPath maps a home-relative destination to its staging location.
// The staging tree mirrors destinations so reruns overwrite rather than
// accumulate stale files.
func (p *Paths) StagedPath(destination string) string {
	return filepath.Join(p.stagingDir, destination)
}

// DestinationPath maps a home-relative destination to its absolute
// location under the home root.
func (p *Paths) DestinationPath(destination string) string {
	return filepath.Join(p.home, destination)
}

// LogFilePath returns the log file location in the XDG state directory.
func (p *Paths) LogFilePath() string {
	return filepath.Join(xdg.StateHome, "dotstrap", LogFileName)
}

// Expand resolves a user-supplied path the way the secrets declaration
// expects: ~/ is relative to the home root, relative paths are relative
// to the repository root, absolute paths pass through.
func (p *Paths) Expand(path, repoRoot string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(p.home, path[2:])
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(repoRoot, path)
}
