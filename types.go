package md2docx

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alnah/go-md2docx/internal/compose"
	"github.com/alnah/go-md2docx/internal/dateutil"
	"github.com/alnah/go-md2docx/internal/model"
)

// Default TOC heading range.
const (
	DefaultTOCMinDepth = compose.DefaultTOCMinDepth
	DefaultTOCMaxDepth = compose.DefaultTOCMaxDepth
)

// StylePolicy holds the fixed formatting applied to generated content:
// fonts, sizes, heading color, code and table header shading.
type StylePolicy = model.StylePolicy

// HalfPoints is a font size in half-points (22 = 11pt).
type HalfPoints = model.HalfPoints

// DefaultStylePolicy returns the built-in style policy.
func DefaultStylePolicy() StylePolicy {
	return model.DefaultStylePolicy()
}

// Input contains conversion parameters.
type Input struct {
	Markdown []byte // Markdown source, any encoding (UTF-8 preferred)

	// Package overrides. nil uses the converter's template set. A package
	// that cannot be opened is treated as absent, or as the bundled default
	// for Theme.
	Theme []byte
	Cover []byte
	End   []byte

	Metadata *Metadata // cover fields and core properties (optional)
	TOC      *TOC      // TOC options (optional, nil = defaults)

	DisableCover bool
	DisableEnd   bool
	DisableTOC   bool
}

// Metadata fills the cover placeholders ({{.Title}}, {{.Author}}, ...) and
// the document properties.
type Metadata struct {
	Title        string // default: text of the first level-1 heading
	Subtitle     string
	Author       string
	Organization string
	Date         string // literal, "auto" or "auto:FORMAT"
	Version      string
}

// Validate checks the date setting. Returns nil if m is nil.
func (m *Metadata) Validate() error {
	if m == nil {
		return nil
	}
	if err := dateutil.Validate(m.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}
	return nil
}

// TOC configures the table of contents field.
type TOC struct {
	Title       string // optional heading above the field
	MinDepth    int    // 0 = DefaultTOCMinDepth
	MaxDepth    int    // 0 = DefaultTOCMaxDepth
	Placeholder string // text shown until the field is updated
}

// Validate checks the heading range. Returns nil if t is nil.
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	return t.options().Validate()
}

func (t *TOC) options() compose.TOCOptions {
	if t == nil {
		return compose.TOCOptions{}
	}
	return compose.TOCOptions{
		Title:       t.Title,
		MinDepth:    t.MinDepth,
		MaxDepth:    t.MaxDepth,
		Placeholder: t.Placeholder,
	}
}

// ConvertResult is a finished conversion.
type ConvertResult struct {
	DOCX        []byte
	Diagnostics Diagnostics
}

// Diagnostics reports what a conversion absorbed instead of failing.
type Diagnostics struct {
	// Warnings hold the recovered errors, matching ErrInputDecoding,
	// ErrThemeLoad or ErrFragmentLoad.
	Warnings []error

	Encoding    string         // detected input encoding
	Blocks      int            // blocks written to the body
	Skipped     int            // markup nodes that produced no block
	SkippedTags map[string]int // skipped nodes by tag name

	// MissingStyles are paragraph styles requested by the content that the
	// theme does not define; direct formatting was used instead.
	MissingStyles []string

	Sections int // sections in the output
	Cover    bool
	End      bool
}

func (d *Diagnostics) warn(err error) {
	d.Warnings = append(d.Warnings, err)
}

// HasWarning reports whether a recovered error matches target.
func (d Diagnostics) HasWarning(target error) bool {
	return slices.ContainsFunc(d.Warnings, func(err error) bool {
		return errors.Is(err, target)
	})
}
