package docx

import (
	"github.com/beevik/etree"
)

const minimalStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="Calibri" w:eastAsia="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/>` +
	`<w:sz w:val="22"/><w:szCs w:val="22"/><w:lang w:val="en-US"/>` +
	`</w:rPr></w:rPrDefault><w:pPrDefault><w:pPr>` +
	`<w:spacing w:after="160" w:line="259" w:lineRule="auto"/>` +
	`</w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`</w:styles>`

// Styles wraps the style definitions part.
type Styles struct {
	root *etree.Element
}

// Styles returns the styles part, creating a minimal one when missing.
func (p *Package) Styles() (*Styles, error) {
	name, err := p.ensureRelatedPart(RelStyles, "word/styles.xml", CTStyles, func() *etree.Document {
		doc := etree.NewDocument()
		_ = doc.ReadFromString(minimalStyles)
		return doc
	})
	if err != nil {
		return nil, err
	}
	doc, err := p.XML(name)
	if err != nil {
		return nil, err
	}
	return &Styles{root: doc.Root()}, nil
}

// HasStyles reports whether the package declares a styles part.
func (p *Package) HasStyles() bool {
	_, ok := p.RelatedPart(RelStyles)
	return ok
}

// Root returns the w:styles element.
func (s *Styles) Root() *etree.Element {
	return s.root
}

// Get returns the style with the given id, or nil.
func (s *Styles) Get(id string) *etree.Element {
	for _, el := range s.root.SelectElements("w:style") {
		if wAttr(el, "styleId") == id {
			return el
		}
	}
	return nil
}

// Has reports whether a style id is defined.
func (s *Styles) Has(id string) bool {
	return id != "" && s.Get(id) != nil
}

// All returns every w:style element.
func (s *Styles) All() []*etree.Element {
	return s.root.SelectElements("w:style")
}

// Add appends a style definition.
func (s *Styles) Add(style *etree.Element) {
	s.root.AddChild(style)
}

// DefaultParagraphStyle returns the id of the default paragraph style.
func (s *Styles) DefaultParagraphStyle() string {
	for _, el := range s.root.SelectElements("w:style") {
		if wAttr(el, "type") == "paragraph" && el.SelectAttr("w:default") != nil && isOn(wAttr(el, "default")) {
			return wAttr(el, "styleId")
		}
	}
	return ""
}
