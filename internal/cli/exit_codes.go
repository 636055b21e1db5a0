package cli

import (
	clierrors "github.com/ariel-frischer/changesets/internal/errors"
)

// Exit codes for the changesets CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates a changeset file failed to decode
	ExitValidationFailed = 1

	// ExitRuntimeError indicates an unexpected failure while running a command
	ExitRuntimeError = 2

	// ExitInvalidArguments indicates invalid command arguments or selections
	ExitInvalidArguments = 3

	// ExitMissingPrerequisites indicates no usable workspace was found
	ExitMissingPrerequisites = 4

	// ExitConfigError indicates the configuration could not be loaded
	ExitConfigError = 5

	// ExitCancelled indicates the user aborted an interactive prompt
	ExitCancelled = 130
)

// exitCodeFor maps an error category to its exit code.
func exitCodeFor(category clierrors.ErrorCategory) int {
	switch category {
	case clierrors.Validation:
		return ExitValidationFailed
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Prerequisite:
		return ExitMissingPrerequisites
	case clierrors.Configuration:
		return ExitConfigError
	default:
		return ExitRuntimeError
	}
}
