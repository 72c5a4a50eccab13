// Package testutil provides helpers for building test configuration
// repositories.
//
// All test data should be defined inline, not in external files, and
// each test should be completely isolated with no shared state.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content under root, creating parent directories as
// needed.
func WriteFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// Repo builds a configuration repository inside a test temp directory.
type Repo struct {
	t    *testing.T
	root string
}

// NewRepo creates an empty repository rooted in a fresh temp directory.
func NewRepo(t *testing.T) *Repo {
	t.Helper()
	return &Repo{t: t, root: t.TempDir()}
}

// Root returns the repository's path.
func (r *Repo) Root() string {
	return r.root
}

// WithFile adds an arbitrary file to the repository.
func (r *Repo) WithFile(name, content string) *Repo {
	r.t.Helper()
	WriteFile(r.t, r.root, name, content)
	return r
}

// WithManifest writes manifest.yaml.
func (r *Repo) WithManifest(content string) *Repo {
	return r.WithFile("manifest.yaml", content)
}

// WithValues writes values.yaml.
func (r *Repo) WithValues(content string) *Repo {
	return r.WithFile("values.yaml", content)
}

// WithSecrets writes secrets/secrets.yaml.
func (r *Repo) WithSecrets(content string) *Repo {
	return r.WithFile("secrets/secrets.yaml", content)
}

// WithBrew writes brew/packages.yaml.
func (r *Repo) WithBrew(content string) *Repo {
	return r.WithFile("brew/packages.yaml", content)
}
