package docx

import "errors"

// Sentinel errors for package operations.
var (
	// ErrNotPackage indicates the bytes are not a WordprocessingML zip package.
	ErrNotPackage = errors.New("not a docx package")

	// ErrMalformedPart indicates a required XML part could not be parsed.
	ErrMalformedPart = errors.New("malformed package part")

	// ErrPackageTooLarge indicates the uncompressed package exceeds MaxUncompressedSize.
	ErrPackageTooLarge = errors.New("package too large")

	// ErrPartNotFound indicates a referenced part does not exist.
	ErrPartNotFound = errors.New("part not found")
)
