package main

import (
	"errors"
	"os"

	chat2html "github.com/alnah/go-chat2html"
	"github.com/alnah/go-chat2html/internal/config"
)

// Exit codes for chat2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input content
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// For a failed batch the causes are checked in group order, so one browser
// failure among parse failures still exits with ExitBrowser.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, chat2html.ErrBrowserConnect) ||
		errors.Is(err, chat2html.ErrPageCreate) ||
		errors.Is(err, chat2html.ErrPageLoad) ||
		errors.Is(err, chat2html.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoInputFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, chat2html.ErrEmptyInput) ||
		errors.Is(err, chat2html.ErrParseLog) ||
		errors.Is(err, chat2html.ErrInvalidImage) ||
		errors.Is(err, chat2html.ErrInvalidRenderer) ||
		errors.Is(err, chat2html.ErrStyleNotFound) ||
		errors.Is(err, chat2html.ErrTemplateNotFound) ||
		errors.Is(err, chat2html.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
