package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrMissingSecret, "secret github_token is not available")

	assert.Equal(t, ErrMissingSecret, err.Code)
	assert.Equal(t, "secret github_token is not available", err.Message)
	assert.Equal(t, "[MISSING_SECRET] secret github_token is not available", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestNewf(t *testing.T) {
	err := Newf(ErrManifestVersion, "manifest declares unsupported version %d", 3)

	assert.Equal(t, ErrManifestVersion, err.Code)
	assert.Equal(t, "[MANIFEST_VERSION] manifest declares unsupported version 3", err.Error())
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := Wrap(cause, ErrLinkIO, "failed to move existing file")

	assert.Equal(t, ErrLinkIO, err.Code)
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "permission denied")
	assert.True(t, stderrors.Is(err, cause))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrLinkIO, "no-op"))
	assert.Nil(t, Wrapf(nil, ErrLinkIO, "no-op %s", "x"))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrLinkIO, "placement failed").
		WithDetail("destination", "/home/user/.gitconfig").
		WithDetail("backup", "/home/user/.dotstrap/backups/.gitconfig.1700000000.bak")

	details := GetErrorDetails(err)
	assert.Equal(t, "/home/user/.gitconfig", details["destination"])
	assert.Equal(t, "/home/user/.dotstrap/backups/.gitconfig.1700000000.bak", details["backup"])
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrMissingSecret, "missing"),
			code:     ErrMissingSecret,
			expected: true,
		},
		{
			name:     "different code",
			err:      New(ErrRender, "render failed"),
			code:     ErrMissingSecret,
			expected: false,
		},
		{
			name:     "wrapped dotstrap error",
			err:      fmt.Errorf("outer: %w", New(ErrStagingIO, "write failed")),
			code:     ErrStagingIO,
			expected: true,
		},
		{
			name:     "plain error",
			err:      stderrors.New("plain"),
			code:     ErrStagingIO,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrRender, GetErrorCode(New(ErrRender, "boom")))
	assert.Equal(t, ErrUnknown, GetErrorCode(stderrors.New("plain")))
}

func TestErrorsIsByCode(t *testing.T) {
	err := Wrap(stderrors.New("disk full"), ErrStagingIO, "staging write failed")

	assert.True(t, stderrors.Is(err, New(ErrStagingIO, "any message")))
	assert.False(t, stderrors.Is(err, New(ErrLinkIO, "any message")))
}
