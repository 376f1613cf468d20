package main

import (
	"errors"
	"os"

	paperexport "github.com/alnah/go-paperexport"
	"github.com/alnah/go-paperexport/internal/config"
	"github.com/alnah/go-paperexport/internal/vault"
)

// Exit codes for the paperexport CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful export
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, paperexport.ErrBrowserConnect) ||
		errors.Is(err, paperexport.ErrPageCreate) ||
		errors.Is(err, paperexport.ErrPageLoad) ||
		errors.Is(err, paperexport.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, paperexport.ErrReadFile) ||
		errors.Is(err, paperexport.ErrListFiles) ||
		errors.Is(err, ErrNoVault) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, paperexport.ErrNoChapters) ||
		errors.Is(err, paperexport.ErrEmptyDocument) ||
		errors.Is(err, paperexport.ErrInvalidPageSize) ||
		errors.Is(err, paperexport.ErrInvalidMargin) ||
		errors.Is(err, paperexport.ErrInvalidFooterPosition) ||
		errors.Is(err, paperexport.ErrStyleNotFound) ||
		errors.Is(err, paperexport.ErrInvalidAssetPath) ||
		errors.Is(err, vault.ErrNotMarkdown) ||
		errors.Is(err, vault.ErrInvalidPath) ||
		errors.Is(err, ErrOutsideVault) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
