package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdHasExpectedCommands(t *testing.T) {
	root := NewRootCmd()

	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}

	for _, expected := range []string{"materialize", "version", "docs", "completion"} {
		assert.True(t, names[expected], "missing command %s", expected)
	}
}

func TestRootCmdWithoutSubcommandFails(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{})

	err := root.Execute()
	assert.Error(t, err)
}

func TestMaterializeCmdFlags(t *testing.T) {
	cmd := newMaterializeCmd()

	for _, flag := range []string{"home", "dry-run", "skip-brew", "workers", "format"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
	assert.Contains(t, cmd.Aliases, "up")
}

func TestDocsCmdListsTopics(t *testing.T) {
	var out bytes.Buffer
	cmd := newDocsCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "repository")
	assert.Contains(t, out.String(), "secrets")
	assert.Contains(t, out.String(), "backups")
}

func TestDocsCmdUnknownTopic(t *testing.T) {
	cmd := newDocsCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"nope"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown topic")
}

func TestDocTopics(t *testing.T) {
	topics := docTopics()
	assert.Equal(t, []string{"backups", "repository", "secrets"}, topics)
}
