package compose

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap/zaptest"

	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/model"
)

// ---------------------------------------------------------------------------
// Fixture builders
// ---------------------------------------------------------------------------

// element parses an XML snippet. Prefixes need no declaration.
func element(t *testing.T, s string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return doc.Root().Copy()
}

func paragraph(text string) *etree.Element {
	return docx.NewTextParagraph(text, model.TextStyle{})
}

// packageWithText returns a one-section package holding one paragraph per
// text.
func packageWithText(t *testing.T, texts ...string) *docx.Package {
	t.Helper()
	p := docx.NewPackage()
	if _, err := p.StripContent(); err != nil {
		t.Fatalf("StripContent() error = %v", err)
	}
	body, _ := p.Body()
	for _, c := range body.ChildElements() {
		if c.Tag == "p" {
			body.RemoveChild(c)
		}
	}
	for _, text := range texts {
		appendBody(t, p, paragraph(text))
	}
	return p
}

func appendBody(t *testing.T, p *docx.Package, els ...*etree.Element) {
	t.Helper()
	if err := p.AppendToBody(els...); err != nil {
		t.Fatalf("AppendToBody() error = %v", err)
	}
}

// setHeader gives the body section of p a default header holding text.
func setHeader(t *testing.T, p *docx.Package, text string) {
	t.Helper()
	sec, err := p.BodySection()
	if err != nil {
		t.Fatalf("BodySection() error = %v", err)
	}
	if err := p.EnsureHeaderFooter(sec); err != nil {
		t.Fatalf("EnsureHeaderFooter() error = %v", err)
	}
	name, ok := p.HeaderFooterPart(sec, docx.Header, docx.RefDefault)
	if !ok {
		t.Fatal("no header part")
	}
	doc, err := p.XML(name)
	if err != nil {
		t.Fatalf("XML(%q) error = %v", name, err)
	}
	root := doc.Root()
	for _, c := range root.ChildElements() {
		root.RemoveChild(c)
	}
	root.AddChild(paragraph(text))
}

// themeWithHeader returns a theme whose only section has the given header.
func themeWithHeader(t *testing.T, header string) *docx.Package {
	t.Helper()
	p := packageWithText(t, "theme sample text")
	if header != "" {
		setHeader(t, p, header)
	}
	return p
}

// buildBody runs the body half of a conversion: snapshot the theme header,
// strip the theme, add content after the placeholder and apply the buffer.
// It returns the package and the first content element.
func buildBody(t *testing.T, theme *docx.Package, content ...*etree.Element) (*docx.Package, *etree.Element) {
	t.Helper()
	sec, err := theme.BodySection()
	if err != nil {
		t.Fatalf("BodySection() error = %v", err)
	}
	snap, err := theme.SnapshotHeadersFooters(sec)
	if err != nil {
		t.Fatalf("SnapshotHeadersFooters() error = %v", err)
	}
	placeholder, err := theme.StripContent()
	if err != nil {
		t.Fatalf("StripContent() error = %v", err)
	}
	appendBody(t, theme, content...)
	if _, err := NewSectionBuffer(zaptest.NewLogger(t)).Apply(theme, placeholder, snap); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	var first *etree.Element
	if len(content) > 0 {
		first = content[0]
	}
	return theme, first
}

// ---------------------------------------------------------------------------
// Inspection helpers
// ---------------------------------------------------------------------------

func sections(t *testing.T, p *docx.Package) []*docx.Section {
	t.Helper()
	secs, err := p.Sections()
	if err != nil {
		t.Fatalf("Sections() error = %v", err)
	}
	return secs
}

func bodyText(t *testing.T, p *docx.Package) string {
	t.Helper()
	body, err := p.Body()
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}
	return docx.Text(body)
}

// sectionTexts returns the visible text of each section, trimmed.
func sectionTexts(t *testing.T, p *docx.Package) []string {
	t.Helper()
	groups, err := p.SectionContents()
	if err != nil {
		t.Fatalf("SectionContents() error = %v", err)
	}
	out := make([]string, len(groups))
	for i, g := range groups {
		var parts []string
		for _, el := range g {
			if s := strings.TrimSpace(docx.Text(el)); s != "" {
				parts = append(parts, s)
			}
		}
		out[i] = strings.Join(parts, "|")
	}
	return out
}

func headerText(t *testing.T, p *docx.Package, sec *docx.Section) string {
	t.Helper()
	text, err := p.HeaderFooterText(sec, docx.Header, docx.RefDefault)
	if err != nil {
		t.Fatalf("HeaderFooterText() error = %v", err)
	}
	return strings.TrimSpace(text)
}

// roundTrip serializes and reopens p.
func roundTrip(t *testing.T, p *docx.Package) *docx.Package {
	t.Helper()
	data, err := p.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	out, err := docx.Open(data)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return out
}
