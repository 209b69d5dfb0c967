package main

import (
	"errors"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidFlags       = errors.New("invalid flags")
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrReadPackage        = errors.New("failed to read document package")
	ErrReadInput          = errors.New("failed to read input file")
	ErrWriteDocument      = errors.New("failed to write output file")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// hintedError appends an actionable hint to the message of err.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// withHint attaches the hint matching err, if any.
func withHint(err error) error {
	if err == nil {
		return nil
	}
	var hint string
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(nil)
	case errors.Is(err, md2docx.ErrTemplateSetNotFound):
		hint = hints.ForTemplateSetNotFound([]string{md2docx.DefaultTemplateSet})
	case errors.Is(err, md2docx.ErrInvalidTemplateSet):
		hint = hints.ForThemePackage()
	case errors.Is(err, md2docx.ErrUnsupportedFormat):
		hint = hints.ForUnsupportedFormat(md2docx.SupportedExtractFormats())
	}
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}
