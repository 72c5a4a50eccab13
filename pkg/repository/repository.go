// Package repository resolves the user-provided source argument into a
// local configuration repository, cloning remote git sources into a
// temporary directory when needed.
package repository

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/types"
)

// Handle represents a resolved configuration repository. Cloned
// repositories own a temp directory released by Close.
type Handle struct {
	path    string
	tempDir string
}

// Path returns the repository root on the local filesystem.
func (h *Handle) Path() string {
	return h.path
}

// Close removes the clone's temp directory, if any. Resolving a local
// path creates nothing, so Close is a no-op for it.
func (h *Handle) Close() error {
	if h.tempDir == "" {
		return nil
	}
	return os.RemoveAll(h.tempDir)
}

// Resolve interprets source as a local path if one exists, otherwise as
// a git URL to shallow-clone.
func Resolve(source string, executor types.Executor) (*Handle, error) {
	logger := logging.GetLogger("repository")

	if info, err := os.Stat(source); err == nil {
		if !info.IsDir() {
			return nil, errors.Newf(errors.ErrRepoResolve,
				"source %s is not a directory", source)
		}
		abs, err := filepath.Abs(source)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRepoResolve,
				"failed to resolve source path %s", source)
		}
		logger.Debug().Str("path", abs).Msg("using local repository")
		return &Handle{path: abs}, nil
	}

	return cloneRemote(source, executor)
}

func cloneRemote(source string, executor types.Executor) (*Handle, error) {
	logger := logging.GetLogger("repository")

	tempDir, err := os.MkdirTemp("", "dotstrap-repo-*")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRepoResolve,
			"failed to create temp directory for clone")
	}

	target := filepath.Join(tempDir, "repo")
	logger.Info().Str("source", source).Msg("cloning repository")

	if err := executor.Run("git", "clone", "--depth", "1", source, target); err != nil {
		_ = os.RemoveAll(tempDir)
		return nil, errors.Wrapf(err, errors.ErrRepoResolve,
			"failed to clone %s", source)
	}

	return &Handle{path: target, tempDir: tempDir}, nil
}
