package cmd

import "errors"

// Exit codes for the parsa CLI
const (
	// ExitSuccess indicates every document parsed and passed its checks
	ExitSuccess = 0

	// ExitCheckFailure indicates a schema or benchmark threshold failure
	ExitCheckFailure = 1

	// ExitParseError indicates a document could not be parsed
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitIOError indicates a file could not be read or written
	ExitIOError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries the process exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func exitCodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUsageError
}
