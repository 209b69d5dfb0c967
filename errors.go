package md2docx

import (
	"errors"

	"github.com/alnah/go-md2docx/internal/compose"
	"github.com/alnah/go-md2docx/internal/extract"
	"github.com/alnah/go-md2docx/internal/model"
	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrConversionFailed is the only error a failed conversion reports.
	// Details go to the converter's logger.
	ErrConversionFailed = errors.New("document conversion failed")

	// Recovered conditions. They never fail a conversion and are reported
	// in Diagnostics.Warnings.
	ErrInputDecoding = pipeline.ErrInputDecoding
	ErrThemeLoad     = errors.New("theme could not be loaded")
	ErrFragmentLoad  = errors.New("fragment could not be loaded")

	// Input validation errors.
	ErrInvalidTOCDepth    = compose.ErrInvalidTOCDepth
	ErrInvalidStylePolicy = model.ErrInvalidPolicy
	ErrInvalidDateFormat  = errors.New("invalid cover date")

	// Asset loading errors.
	ErrTemplateSetNotFound = errors.New("template set not found")
	ErrInvalidTemplateSet  = errors.New("template set holds an invalid package")
	ErrInvalidAssetPath    = errors.New("invalid asset path")

	// Extraction errors.
	ErrUnsupportedFormat = extract.ErrUnsupportedFormat
	ErrEmptyFile         = extract.ErrEmptyFile
	ErrFileTooLarge      = extract.ErrFileTooLarge
	ErrExtractionFailed  = extract.ErrExtractionFailed
)
