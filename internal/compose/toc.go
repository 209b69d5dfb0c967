package compose

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/model"
)

// Depth bounds of the TOC heading range.
const (
	DefaultTOCMinDepth = 1
	DefaultTOCMaxDepth = 3
	maxTOCDepth        = 6
)

// tocTitleStyle is the paragraph style used for the title when the package
// defines it.
const tocTitleStyle = "TOCHeading"

// ErrInvalidTOCDepth is returned when the heading range is out of bounds.
var ErrInvalidTOCDepth = errors.New("invalid TOC depth")

// TOCOptions configures the table of contents field.
type TOCOptions struct {
	Title    string // optional title paragraph above the field
	MinDepth int    // first heading level listed, 0 means 1
	MaxDepth int    // last heading level listed, 0 means 3

	// Placeholder is shown until the consuming application refreshes the
	// field. Empty leaves the field result empty.
	Placeholder string

	// TitleStyle formats the title when the package lacks a TOCHeading style.
	TitleStyle model.TextStyle
}

func (o TOCOptions) depths() (int, int) {
	lo, hi := o.MinDepth, o.MaxDepth
	if lo == 0 {
		lo = DefaultTOCMinDepth
	}
	if hi == 0 {
		hi = DefaultTOCMaxDepth
	}
	return lo, hi
}

// Validate checks the heading range.
func (o TOCOptions) Validate() error {
	lo, hi := o.depths()
	if lo < 1 || hi > maxTOCDepth || lo > hi {
		return fmt.Errorf("%w: %d-%d (want 1 <= min <= max <= %d)", ErrInvalidTOCDepth, lo, hi, maxTOCDepth)
	}
	return nil
}

// Instruction returns the field code, e.g. TOC \o "1-3" \h \z \u.
func (o TOCOptions) Instruction() string {
	lo, hi := o.depths()
	return fmt.Sprintf(`TOC \o "%d-%d" \h \z \u`, lo, hi)
}

// TOCSynthesizer inserts a table of contents field that the consuming
// application computes when the document is opened.
type TOCSynthesizer struct {
	opts TOCOptions
}

// NewTOCSynthesizer validates opts and returns a synthesizer.
func NewTOCSynthesizer(opts TOCOptions) (*TOCSynthesizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &TOCSynthesizer{opts: opts}, nil
}

// Insert places the title, the field paragraph and a page break right
// before at, then asks the package to refresh fields on open and to open in
// print layout. at is the first element of the Body Section, or the
// body-level w:sectPr when the body is empty.
func (s *TOCSynthesizer) Insert(pkg *docx.Package, at *etree.Element) error {
	if at == nil || at.Parent() == nil {
		return errors.New("TOC anchor is not attached to a document")
	}

	var els []*etree.Element
	if s.opts.Title != "" {
		title, err := s.titleParagraph(pkg)
		if err != nil {
			return err
		}
		els = append(els, title)
	}
	els = append(els, s.fieldParagraph(), docx.NewPageBreak())
	docx.InsertBefore(at, els...)

	settings, err := pkg.Settings()
	if err != nil {
		return fmt.Errorf("unable to open settings: %w", err)
	}
	settings.SetUpdateFields(true)
	settings.SetView("print")
	return nil
}

// InsertTOC is a convenience wrapper around NewTOCSynthesizer and Insert.
func InsertTOC(pkg *docx.Package, at *etree.Element, opts TOCOptions) error {
	s, err := NewTOCSynthesizer(opts)
	if err != nil {
		return err
	}
	return s.Insert(pkg, at)
}

func (s *TOCSynthesizer) titleParagraph(pkg *docx.Package) (*etree.Element, error) {
	styles, err := pkg.Styles()
	if err != nil {
		return nil, fmt.Errorf("unable to open styles: %w", err)
	}
	if styles.Has(tocTitleStyle) {
		return docx.NewTextParagraph(s.opts.Title, model.TextStyle{ParagraphStyle: tocTitleStyle}), nil
	}
	style := s.opts.TitleStyle
	style.ParagraphStyle = ""
	return docx.NewTextParagraph(s.opts.Title, style), nil
}

// fieldParagraph builds begin, instruction, separate, optional placeholder
// result and end, each in its own run.
func (s *TOCSynthesizer) fieldParagraph() *etree.Element {
	p := etree.NewElement("w:p")

	begin := fldChar(p, "begin")
	begin.CreateAttr("w:dirty", "true")

	instr := p.CreateElement("w:r").CreateElement("w:instrText")
	instr.CreateAttr("xml:space", "preserve")
	instr.SetText(" " + s.opts.Instruction() + " ")

	fldChar(p, "separate")
	if s.opts.Placeholder != "" {
		t := p.CreateElement("w:r").CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(s.opts.Placeholder)
	}
	fldChar(p, "end")
	return p
}

func fldChar(p *etree.Element, kind string) *etree.Element {
	el := p.CreateElement("w:r").CreateElement("w:fldChar")
	el.CreateAttr("w:fldCharType", kind)
	return el
}

// FieldInstructions returns the instruction texts of every complex field in
// el, in document order.
func FieldInstructions(el *etree.Element) []string {
	var out []string
	for _, it := range el.FindElements(".//w:instrText") {
		out = append(out, it.Text())
	}
	return out
}
