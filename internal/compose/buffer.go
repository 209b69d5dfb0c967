package compose

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/docx"
)

// ErrNoPlaceholder is returned when the buffer paragraph is missing or not
// part of the package body.
var ErrNoPlaceholder = errors.New("buffer placeholder is not a body paragraph")

// SectionBuffer isolates the Body Section from whatever fragment ends up in
// front of it.
//
// The placeholder paragraph closes a zero-content buffer section that starts
// on a new page and carries its own header and footer. The body-level
// w:sectPr becomes the Body Section: it starts continuously and references
// fresh copies of the theme's header and footer, so nothing links back to a
// preceding Cover.
type SectionBuffer struct {
	log *zap.Logger
}

// NewSectionBuffer returns a buffer strategy logging to log. A nil log
// discards output.
func NewSectionBuffer(log *zap.Logger) *SectionBuffer {
	if log == nil {
		log = zap.NewNop()
	}
	return &SectionBuffer{log: log}
}

// Apply turns placeholder into the buffer section break and rewires the
// body-level section of pkg. theme is the header/footer snapshot taken from
// the theme's first section before its content was stripped; nil gives
// empty parts. The returned section is the Body Section.
func (b *SectionBuffer) Apply(pkg *docx.Package, placeholder *etree.Element, theme *docx.HeaderFooterSnapshot) (*docx.Section, error) {
	body, err := pkg.Body()
	if err != nil {
		return nil, err
	}
	if placeholder == nil || placeholder.Parent() != body || placeholder.Space != "w" || placeholder.Tag != "p" {
		return nil, ErrNoPlaceholder
	}
	if theme == nil {
		theme = docx.NewEmptySnapshot()
	}

	bodySec, err := pkg.BodySection()
	if err != nil {
		return nil, err
	}

	bufferProps := bodySec.Props.Copy()
	docx.SetParagraphSectPr(placeholder, bufferProps)
	buffer := &docx.Section{Props: bufferProps}
	buffer.SetBreakType(docx.BreakNextPage)
	if err := theme.CloneInto(pkg, buffer); err != nil {
		return nil, fmt.Errorf("unable to give buffer section its own header and footer: %w", err)
	}

	bodySec.SetBreakType(docx.BreakContinuous)
	if err := theme.CloneInto(pkg, bodySec); err != nil {
		return nil, fmt.Errorf("unable to copy theme header and footer into body section: %w", err)
	}

	pruned, err := pkg.PruneHeadersFooters()
	if err != nil {
		return nil, fmt.Errorf("unable to prune theme headers: %w", err)
	}

	secs, err := pkg.Sections()
	if err != nil {
		return nil, err
	}
	b.log.Debug("Section buffer applied",
		zap.Int("sections", len(secs)),
		zap.Bool("theme_header", theme.Has(docx.Header)),
		zap.Bool("theme_footer", theme.Has(docx.Footer)),
		zap.Int("pruned_parts", pruned))
	return secs[len(secs)-1], nil
}
