package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithExplicitHome(t *testing.T) {
	p, err := New("/home/user")
	require.NoError(t, err)

	assert.Equal(t, "/home/user", p.HomeDir())
	assert.Equal(t, "/home/user/.dotstrap/generated", p.StagingDir())
	assert.Equal(t, "/home/user/.dotstrap/backups", p.BackupDir())
}

func TestNewUsesEnvOverride(t *testing.T) {
	t.Setenv(EnvHome, "/srv/fake-home")

	p, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/fake-home", p.HomeDir())
}

func TestNewWithOptions(t *testing.T) {
	p, err := NewWithOptions("/home/user", Options{
		StagingDir: ".local/share/dotstrap/generated",
		BackupDir:  ".local/share/dotstrap/backups",
	})
	require.NoError(t, err)

	assert.Equal(t, "/home/user/.local/share/dotstrap/generated", p.StagingDir())
	assert.Equal(t, "/home/user/.local/share/dotstrap/backups", p.BackupDir())
}

func TestStagedAndDestinationPaths(t *testing.T) {
	p, err := New("/home/user")
	require.NoError(t, err)

	assert.Equal(t, "/home/user/.dotstrap/generated/.gitconfig", p.StagedPath(".gitconfig"))
	assert.Equal(t, "/home/user/.gitconfig", p.DestinationPath(".gitconfig"))
	assert.Equal(t, "/home/user/.config/nvim/init.lua", p.DestinationPath(".config/nvim/init.lua"))
}

func TestLogFilePath(t *testing.T) {
	p, err := New("/home/user")
	require.NoError(t, err)

	path := p.LogFilePath()
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, LogFileName, filepath.Base(path))
}

func TestExpand(t *testing.T) {
	p, err := New("/home/user")
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "tilde is home relative", path: "~/.ssh/token", expected: "/home/user/.ssh/token"},
		{name: "relative is repo relative", path: "secrets/token", expected: "/repo/secrets/token"},
		{name: "absolute passes through", path: "/etc/token", expected: "/etc/token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Expand(tt.path, "/repo"))
		})
	}
}

func TestValidateDestination(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		wantErr     bool
	}{
		{name: "simple dotfile", destination: ".gitconfig", wantErr: false},
		{name: "nested destination", destination: ".config/nvim/init.lua", wantErr: false},
		{name: "empty", destination: "", wantErr: true},
		{name: "absolute", destination: "/etc/passwd", wantErr: true},
		{name: "traversal", destination: "../outside", wantErr: true},
		{name: "sneaky traversal", destination: ".config/../../outside", wantErr: true},
		{name: "null byte", destination: ".git\x00config", wantErr: true},
		{name: "dot only", destination: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDestination(tt.destination)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSource(t *testing.T) {
	assert.NoError(t, ValidateSource("templates/gitconfig.tmpl"))
	assert.Error(t, ValidateSource(""))
	assert.Error(t, ValidateSource("/etc/passwd"))
	assert.Error(t, ValidateSource("../outside.tmpl"))
}
