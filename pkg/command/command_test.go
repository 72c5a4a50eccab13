package command

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotstrap/pkg/errors"
)

func TestSystemExecutorRunsTrue(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix coreutils")
	}

	exec := NewSystemExecutor()
	assert.NoError(t, exec.Run("true"))
}

func TestSystemExecutorReportsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix coreutils")
	}

	exec := NewSystemExecutor()
	err := exec.Run("false")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCommandFailed, errors.GetErrorCode(err))
}

func TestSystemExecutorMissingProgram(t *testing.T) {
	exec := NewSystemExecutor()
	err := exec.Run("definitely-not-a-real-program-8731")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCommandIO, errors.GetErrorCode(err))
}

func TestRecordingExecutor(t *testing.T) {
	exec := NewRecordingExecutor()

	require.NoError(t, exec.Run("git", "clone", "--depth", "1", "url", "dir"))
	require.NoError(t, exec.Run("brew", "update"))

	calls := exec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "git", calls[0].Program)
	assert.Equal(t, []string{"clone", "--depth", "1", "url", "dir"}, calls[0].Args)
	assert.Equal(t, "brew", calls[1].Program)
}

func TestRecordingExecutorWithFailure(t *testing.T) {
	exec := NewRecordingExecutorWithFailure("brew")

	assert.NoError(t, exec.Run("git", "status"))
	err := exec.Run("brew", "--version")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCommandFailed, errors.GetErrorCode(err))

	// Failed calls are still recorded.
	assert.Len(t, exec.Calls(), 2)
}
