package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLoggerVerbosityLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		expected  zerolog.Level
	}{
		{name: "default is warn", verbosity: 0, expected: zerolog.WarnLevel},
		{name: "v is info", verbosity: 1, expected: zerolog.InfoLevel},
		{name: "vv is debug", verbosity: 2, expected: zerolog.DebugLevel},
		{name: "vvv is trace", verbosity: 3, expected: zerolog.TraceLevel},
		{name: "beyond vvv stays trace", verbosity: 7, expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupLogger(tt.verbosity)
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger("linker")
	// A component logger must be usable without further setup.
	logger.Debug().Str("destination", "/home/user/.gitconfig").Msg("test message")
}

func TestLogFilePath(t *testing.T) {
	path := LogFilePath()

	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "dotstrap.log", filepath.Base(path))
	assert.Equal(t, "dotstrap", filepath.Base(filepath.Dir(path)))
}

func TestLogDuration(t *testing.T) {
	// Smoke test: must not panic with a zero-valued start time.
	LogDuration(time.Now(), "materialize")
}
