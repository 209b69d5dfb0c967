package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrTemplateSetNotFound indicates the requested template set does not exist.
	ErrTemplateSetNotFound = errors.New("template set not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrNotPackage indicates an asset file is not a zip container.
	ErrNotPackage = errors.New("asset is not a document package")

	// ErrAssetTooLarge indicates an asset file exceeds MaxAssetSize.
	ErrAssetTooLarge = errors.New("asset too large")
)
