// Package linker reconciles staged artifacts against their destinations
// in the home directory. It carries the system's core guarantee: no run
// may destroy user data without creating a recoverable backup first.
package linker

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/arthur-debert/dotstrap/pkg/types"
)

// Linker commits staged artifacts into the home directory using an
// explicit displace-then-place sequence per destination, so every
// failure mode has a well-defined, inspectable intermediate state.
type Linker struct {
	fs    types.FS
	paths *paths.Paths

	// now is swappable so backup names are deterministic in tests.
	now func() time.Time
}

// New creates a linker operating on the given filesystem and path set.
func New(fs types.FS, p *paths.Paths) *Linker {
	return &Linker{fs: fs, paths: p, now: time.Now}
}

// Commit reconciles one staged artifact against its destination.
//
// The sequence is:
//  1. validate the destination (inside the home root, not a directory,
//     not a symlink) before any mutation
//  2. missing destination: place the staged content atomically
//  3. byte-identical destination: done, no backup, mtime untouched
//  4. differing destination: move it to a backup, verify the move,
//     then place the staged content atomically
//
// With dryRun set nothing is mutated; differing destinations report the
// would-be backup path. Failures never leave the destination worse than
// before: if the backup move succeeded but placement failed, the
// destination stays backed-up-and-absent and the outcome names the
// backup so the user can recover manually.
func (l *Linker) Commit(artifact *types.StagedArtifact, dryRun bool) (types.LinkOutcome, *types.BackupRecord) {
	logger := logging.GetLogger("linker")

	entry := types.ManifestEntry{
		Source:      artifact.Source,
		Destination: artifact.Destination,
		Mode:        artifact.Mode,
	}

	if err := paths.ValidateDestination(artifact.Destination); err != nil {
		return failed(entry, "", err), nil
	}

	destPath := l.paths.DestinationPath(artifact.Destination)

	info, err := l.fs.Lstat(destPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return failed(entry, "", errors.Wrapf(err, errors.ErrLinkIO,
				"failed to inspect destination %s", destPath)), nil
		}

		// Destination does not exist.
		if dryRun {
			logger.Info().Str("destination", destPath).Msg("dry run: would link")
			return types.LinkOutcome{Entry: entry, Status: types.LinkStatusSkippedDryRun}, nil
		}
		if err := l.place(artifact, destPath); err != nil {
			return failed(entry, "", err), nil
		}
		logger.Info().Str("destination", destPath).Msg("linked")
		return types.LinkOutcome{Entry: entry, Status: types.LinkStatusLinked}, nil
	}

	// Never write through a destination symlink into an unintended
	// location; the linker operates on the destination path itself.
	if info.Mode()&os.ModeSymlink != 0 {
		return failed(entry, "", errors.Newf(errors.ErrLinkValidation,
			"destination %s is a symbolic link", destPath)), nil
	}
	if info.IsDir() {
		return failed(entry, "", errors.Newf(errors.ErrLinkValidation,
			"destination %s is a directory", destPath)), nil
	}

	existing, err := l.fs.ReadFile(destPath)
	if err != nil {
		return failed(entry, "", errors.Wrapf(err, errors.ErrLinkIO,
			"failed to read destination %s", destPath)), nil
	}

	if bytes.Equal(existing, artifact.Content) {
		// Already up to date. No backup, no rewrite, no mtime churn.
		logger.Debug().Str("destination", destPath).Msg("destination already up to date")
		return types.LinkOutcome{Entry: entry, Status: types.LinkStatusLinked}, nil
	}

	backupPath := l.backupPath(artifact.Destination)

	if dryRun {
		logger.Info().
			Str("destination", destPath).
			Str("backup", backupPath).
			Msg("dry run: would back up and link")
		return types.LinkOutcome{
			Entry:      entry,
			Status:     types.LinkStatusSkippedDryRun,
			BackupPath: backupPath,
		}, nil
	}

	record, err := l.backup(destPath, backupPath)
	if err != nil {
		return failed(entry, "", err), nil
	}

	if err := l.place(artifact, destPath); err != nil {
		// The destination is now backed-up-and-absent, which is
		// strictly recoverable. Name the backup so the user can
		// restore by hand.
		return failed(entry, backupPath, errors.Wrapf(err, errors.ErrLinkIO,
			"placed backup at %s but failed to write destination %s", backupPath, destPath).
			WithDetail("backup", backupPath)), record
	}

	logger.Info().
		Str("destination", destPath).
		Str("backup", backupPath).
		Msg("backed up and linked")

	return types.LinkOutcome{
		Entry:      entry,
		Status:     types.LinkStatusBackedUp,
		BackupPath: backupPath,
	}, record
}

// place writes the staged content at the destination so it appears
// atomic to observers: write to a temp file in the destination's
// directory (same volume), then rename over the destination.
func (l *Linker) place(artifact *types.StagedArtifact, destPath string) error {
	if err := l.fs.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrLinkIO,
			"failed to create parent directory for %s", destPath)
	}

	tmpPath := fmt.Sprintf("%s.dotstrap-tmp-%d", destPath, l.now().UnixNano())

	mode := fs.FileMode(0644)
	if artifact.Mode != nil {
		mode = fs.FileMode(*artifact.Mode)
	}

	if err := l.fs.WriteFile(tmpPath, artifact.Content, mode); err != nil {
		return errors.Wrapf(err, errors.ErrLinkIO,
			"failed to write temp file for %s", destPath)
	}

	if err := l.fs.Rename(tmpPath, destPath); err != nil {
		_ = l.fs.Remove(tmpPath)
		return errors.Wrapf(err, errors.ErrLinkIO,
			"failed to move temp file into place at %s", destPath)
	}

	return nil
}

// backup displaces the existing destination file and verifies the move
// before the caller is allowed to overwrite anything.
func (l *Linker) backup(destPath, backupPath string) (*types.BackupRecord, error) {
	if err := l.fs.MkdirAll(filepath.Dir(backupPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrLinkIO,
			"failed to create backup directory for %s", backupPath)
	}

	if err := l.fs.Rename(destPath, backupPath); err != nil {
		return nil, errors.Wrapf(err, errors.ErrLinkIO,
			"failed to move %s to backup %s", destPath, backupPath)
	}

	if _, err := l.fs.Stat(backupPath); err != nil {
		return nil, errors.Wrapf(err, errors.ErrLinkIO,
			"backup move reported success but %s is missing", backupPath)
	}

	return &types.BackupRecord{
		OriginalPath: destPath,
		BackupPath:   backupPath,
		Timestamp:    l.now(),
	}, nil
}

// backupPath derives a collision-resistant backup location mirroring
// the destination's relative path under the backup directory. The
// timestamp suffix plus a counter guarantees no prior backup is ever
// overwritten within a run.
func (l *Linker) backupPath(destination string) string {
	base := filepath.Join(l.paths.BackupDir(), destination)
	stamp := l.now().Unix()

	candidate := fmt.Sprintf("%s.%d.bak", base, stamp)
	for counter := 1; l.exists(candidate); counter++ {
		candidate = fmt.Sprintf("%s.%d.%d.bak", base, stamp, counter)
	}
	return candidate
}

func (l *Linker) exists(path string) bool {
	_, err := l.fs.Lstat(path)
	return err == nil
}

func failed(entry types.ManifestEntry, backupPath string, err error) types.LinkOutcome {
	return types.LinkOutcome{
		Entry:      entry,
		Status:     types.LinkStatusFailed,
		BackupPath: backupPath,
		Err:        err,
	}
}
