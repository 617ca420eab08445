package cmd

// Exit codes for karmarun CLI
const (
	// ExitSuccess indicates the command succeeded
	ExitSuccess = 0

	// ExitValidationFailure indicates one or more configurations have problems
	ExitValidationFailure = 1

	// ExitParseError indicates a document parsing error
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitStoreError indicates a store error
	ExitStoreError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries a specific exit code out of a command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}
