package extract

import "errors"

// Sentinel errors for extraction.
var (
	// ErrUnsupportedFormat indicates the file is neither .docx nor .pdf, or its
	// content does not match its extension.
	ErrUnsupportedFormat = errors.New("unsupported file type")

	// ErrEmptyFile indicates a zero-byte upload.
	ErrEmptyFile = errors.New("empty file")

	// ErrFileTooLarge indicates the file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrExtractionFailed indicates every extractor for the format failed.
	ErrExtractionFailed = errors.New("extraction failed")
)
