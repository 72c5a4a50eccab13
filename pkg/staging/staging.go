// Package staging writes rendered content into the generated-content
// staging area before anything touches the home directory.
package staging

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/arthur-debert/dotstrap/pkg/types"
)

// Writer stages rendered manifest entries. The staging tree mirrors
// destinations, so successive runs overwrite deterministically instead
// of accumulating stale files.
type Writer struct {
	fs    types.FS
	paths *paths.Paths
}

// NewWriter creates a staging writer rooted at the paths' staging dir.
func NewWriter(fs types.FS, p *paths.Paths) *Writer {
	return &Writer{fs: fs, paths: p}
}

// Stage writes rendered content to the entry's deterministic staging
// path. Parent directories are created inside the staging area only;
// the home directory is never touched at this stage.
func (w *Writer) Stage(entry types.ManifestEntry, rendered []byte) (*types.StagedArtifact, error) {
	logger := logging.GetLogger("staging")

	destination := filepath.Clean(entry.Destination)
	stagedPath := w.paths.StagedPath(destination)

	if err := w.fs.MkdirAll(filepath.Dir(stagedPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStagingIO,
			"failed to create staging directory for %s", destination).
			WithDetail("destination", destination)
	}

	if err := w.fs.WriteFile(stagedPath, rendered, 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStagingIO,
			"failed to write staged file %s", stagedPath).
			WithDetail("destination", destination)
	}

	// Mode bits are best-effort and platform-conditional, never fatal.
	if entry.Mode != nil {
		if err := w.fs.Chmod(stagedPath, fs.FileMode(*entry.Mode)); err != nil {
			logger.Warn().
				Err(err).
				Str("path", stagedPath).
				Msg("failed to apply mode to staged file")
		}
	}

	logger.Debug().
		Str("destination", destination).
		Str("staged", stagedPath).
		Int("bytes", len(rendered)).
		Msg("staged rendered content")

	return &types.StagedArtifact{
		Source:      entry.Source,
		Destination: destination,
		StagedPath:  stagedPath,
		Content:     rendered,
		Mode:        entry.Mode,
	}, nil
}
