// Package command provides the external-command execution abstraction
// used by services that invoke tools like git and brew.
package command

import (
	"os/exec"
	"sync"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/logging"
)

// SystemExecutor runs commands through os/exec, inheriting the parent's
// stdout and stderr so tool output stays visible to the user.
type SystemExecutor struct{}

// NewSystemExecutor creates the default executor.
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Run executes the program and waits for it to finish.
func (e *SystemExecutor) Run(program string, args ...string) error {
	logger := logging.GetLogger("command")
	logger.Debug().Str("program", program).Strs("args", args).Msg("executing command")

	cmd := exec.Command(program, args...)
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return errors.Newf(errors.ErrCommandFailed,
				"command %s failed with status %d", program, exitErr.ExitCode()).
				WithDetail("program", program)
		}
		return errors.Wrapf(err, errors.ErrCommandIO,
			"failed to execute command %s", program)
	}
	return nil
}

// Call records a single invocation seen by a RecordingExecutor.
type Call struct {
	Program string
	Args    []string
}

// RecordingExecutor records invocations instead of spawning processes.
// It is used by tests and never touches the system.
type RecordingExecutor struct {
	mu     sync.Mutex
	calls  []Call
	failOn string
}

// NewRecordingExecutor creates an executor that succeeds on every call.
func NewRecordingExecutor() *RecordingExecutor {
	return &RecordingExecutor{}
}

// NewRecordingExecutorWithFailure creates an executor that fails every
// invocation of the named program.
func NewRecordingExecutorWithFailure(program string) *RecordingExecutor {
	return &RecordingExecutor{failOn: program}
}

// Run records the invocation and optionally simulates a failure.
func (e *RecordingExecutor) Run(program string, args ...string) error {
	e.mu.Lock()
	e.calls = append(e.calls, Call{Program: program, Args: args})
	e.mu.Unlock()

	if e.failOn != "" && e.failOn == program {
		return errors.Newf(errors.ErrCommandFailed,
			"command %s failed with status 1", program)
	}
	return nil
}

// Calls returns a copy of the recorded invocations.
func (e *RecordingExecutor) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	calls := make([]Call, len(e.calls))
	copy(calls, e.calls)
	return calls
}
