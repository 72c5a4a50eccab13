package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkOutcomeSucceeded(t *testing.T) {
	tests := []struct {
		name     string
		outcome  LinkOutcome
		expected bool
	}{
		{
			name:     "linked succeeds",
			outcome:  LinkOutcome{Status: LinkStatusLinked},
			expected: true,
		},
		{
			name:     "backed up and linked succeeds",
			outcome:  LinkOutcome{Status: LinkStatusBackedUp, BackupPath: "/home/u/.dotstrap/backups/.gitconfig.1.bak"},
			expected: true,
		},
		{
			name:     "dry run skip succeeds",
			outcome:  LinkOutcome{Status: LinkStatusSkippedDryRun},
			expected: true,
		},
		{
			name:     "failed does not succeed",
			outcome:  LinkOutcome{Status: LinkStatusFailed, Err: errors.New("disk full")},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.outcome.Succeeded())
		})
	}
}

func TestExecutionReportSuccess(t *testing.T) {
	report := &ExecutionReport{
		State: RunStateCompleted,
		Outcomes: []LinkOutcome{
			{Entry: ManifestEntry{Destination: ".gitconfig"}, Status: LinkStatusLinked},
			{Entry: ManifestEntry{Destination: ".zshrc"}, Status: LinkStatusBackedUp},
		},
	}
	assert.True(t, report.Success())
	assert.Empty(t, report.FailedOutcomes())

	report.Outcomes = append(report.Outcomes, LinkOutcome{
		Entry:  ManifestEntry{Destination: ".vimrc"},
		Status: LinkStatusFailed,
		Err:    errors.New("permission denied"),
	})
	assert.False(t, report.Success())

	failed := report.FailedOutcomes()
	assert.Len(t, failed, 1)
	assert.Equal(t, ".vimrc", failed[0].Entry.Destination)
}

func TestExecutionReportAbortedNeverSucceeds(t *testing.T) {
	report := &ExecutionReport{State: RunStateAborted}
	assert.False(t, report.Success())
}
