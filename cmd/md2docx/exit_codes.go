package main

import (
	"errors"
	"os"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/dateutil"
)

// Exit codes for md2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Successful conversion
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // File not found, permission denied
	ExitConversion = 4 // Composition or extraction failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, md2docx.ErrInvalidDateFormat) ||
		errors.Is(err, md2docx.ErrInvalidTOCDepth) ||
		errors.Is(err, md2docx.ErrInvalidStylePolicy) ||
		errors.Is(err, md2docx.ErrTemplateSetNotFound) ||
		errors.Is(err, md2docx.ErrInvalidTemplateSet) ||
		errors.Is(err, md2docx.ErrInvalidAssetPath) ||
		errors.Is(err, md2docx.ErrUnsupportedFormat) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadPackage) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteDocument) ||
		errors.Is(err, md2docx.ErrEmptyFile) ||
		errors.Is(err, md2docx.ErrFileTooLarge) {
		return ExitIO
	}

	// Conversion errors (exit 4)
	if errors.Is(err, md2docx.ErrConversionFailed) ||
		errors.Is(err, md2docx.ErrExtractionFailed) {
		return ExitConversion
	}

	return ExitGeneral
}
