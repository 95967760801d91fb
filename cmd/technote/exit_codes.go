package main

import (
	"errors"
	"os"

	technote "github.com/alnah/go-technote"
)

// Exit codes for the technote CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command succeeded
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, configuration, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2). Checked before I/O so a
	// missing technote.toml maps here.
	if errors.Is(err, technote.ErrConfigNotFound) ||
		errors.Is(err, technote.ErrMalformedSyntax) ||
		errors.Is(err, technote.ErrValidation) ||
		errors.Is(err, technote.ErrMissingTitle) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, technote.ErrRootFileNotFound) ||
		errors.Is(err, ErrReadHTML) ||
		errors.Is(err, ErrReadEnvFile) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
