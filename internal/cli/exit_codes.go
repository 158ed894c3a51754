package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/relnote-dev/relnote/internal/errors"
)

// Exit codes for the relnote CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure during command execution
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitConfigInvalid indicates the configuration could not be loaded or validated
	ExitConfigInvalid = 3

	// ExitMissingPrerequisites indicates required repository state or releases are missing
	ExitMissingPrerequisites = 4

	// ExitNetworkFailure indicates the GitHub API or npm registry was unreachable
	ExitNetworkFailure = 5
)

// ExitError carries an explicit exit code out of a command that has already
// printed its own diagnostics.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitConfigInvalid
		case clierrors.Prerequisite:
			return ExitMissingPrerequisites
		case clierrors.Network:
			return ExitNetworkFailure
		}
	}

	return ExitFailure
}
