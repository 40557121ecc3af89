package cli

import "errors"

// CommandError is returned by a command that has already reported its
// failure on stderr and only needs the process to exit with a code.
type CommandError struct {
	exitCode int
}

func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

func (e *CommandError) Error() string {
	return "command failed"
}

func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// CommandResult is the outcome of a command as seen by main: the exit code
// and, for unreported failures, the error to print.
type CommandResult struct {
	ExitCode int
	Err      error
}

func Success() CommandResult {
	return CommandResult{ExitCode: 0}
}

// Failure is an unreported failure, exiting with 1.
func Failure(err error) CommandResult {
	return CommandResult{ExitCode: 1, Err: err}
}

// ResultOf maps the error returned by a command to a CommandResult. A
// CommandError anywhere in the chain keeps its exit code.
func ResultOf(err error) CommandResult {
	if err == nil {
		return Success()
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return CommandResult{ExitCode: cmdErr.ExitCode(), Err: err}
	}
	return Failure(err)
}
