package main

import (
	"errors"
	"os"

	lit2html "github.com/alnah/go-lit2html"
	"github.com/alnah/go-lit2html/internal/config"
)

// Exit codes for lit2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Successful conversion
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // File not found, permission denied
	ExitBrowser    = 4 // Browser/Chrome errors
	ExitConversion = 5 // The source document itself failed to convert
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, lit2html.ErrBrowserConnect) ||
		errors.Is(err, lit2html.ErrPageCreate) ||
		errors.Is(err, lit2html.ErrPageLoad) ||
		errors.Is(err, lit2html.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Conversion errors (exit 5)
	if lit2html.IsConversionError(err) {
		return ExitConversion
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrInvalidParamFlag) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidColor) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, lit2html.ErrInvalidPageSize) ||
		errors.Is(err, lit2html.ErrInvalidOrientation) ||
		errors.Is(err, lit2html.ErrInvalidMargin) ||
		errors.Is(err, lit2html.ErrStyleNotFound) ||
		errors.Is(err, lit2html.ErrTemplateNotFound) ||
		errors.Is(err, lit2html.ErrTemplateParse) ||
		errors.Is(err, lit2html.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
