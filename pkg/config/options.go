package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/types"
)

// Repo-level option file names, tried in order.
var optionFileNames = []string{".dotstrap.toml", "dotstrap.toml"}

// RepoOptions are optional, repository-scoped tool settings read from
// .dotstrap.toml (or dotstrap.toml) at the repository root. Everything
// here has a sensible default; the file is entirely optional.
type RepoOptions struct {
	Staging StagingOptions `toml:"staging"`
	Backups BackupOptions  `toml:"backups"`
	Brew    BrewOptions    `toml:"brew"`
}

// StagingOptions controls where rendered output is staged, relative to
// the home root.
type StagingOptions struct {
	Dir string `toml:"dir"`
}

// BackupOptions controls where displaced files are kept, relative to
// the home root.
type BackupOptions struct {
	Dir string `toml:"dir"`
}

// BrewOptions points at the Homebrew package spec inside the repository.
type BrewOptions struct {
	Manifest string `toml:"manifest"`
}

// LoadRepoOptions reads the repo-level options file if one exists.
// Absent files yield zero-valued options.
func LoadRepoOptions(fs types.FS, repoRoot string) (*RepoOptions, error) {
	var opts RepoOptions
	for _, name := range optionFileNames {
		path := filepath.Join(repoRoot, name)
		data, err := fs.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to read options %s", path)
		}
		if err := toml.Unmarshal(data, &opts); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to parse toml file %s", path)
		}
		break
	}
	return &opts, nil
}
