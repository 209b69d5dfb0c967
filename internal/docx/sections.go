package docx

import (
	"github.com/beevik/etree"
)

// Header/footer reference types.
const (
	RefDefault = "default"
	RefFirst   = "first"
	RefEven    = "even"
)

// Section break types.
const (
	BreakNextPage   = "nextPage"
	BreakContinuous = "continuous"
	BreakEvenPage   = "evenPage"
	BreakOddPage    = "oddPage"
)

// Kind distinguishes headers from footers.
type Kind int

// Header and footer kinds.
const (
	Header Kind = iota
	Footer
)

func (k Kind) String() string {
	if k == Footer {
		return "footer"
	}
	return "header"
}

func (k Kind) refTag() string     { return k.String() + "Reference" }
func (k Kind) rootTag() string    { return map[Kind]string{Header: "w:hdr", Footer: "w:ftr"}[k] }
func (k Kind) defaultName() string { return "word/" + k.String() + "1.xml" }

func (k Kind) relType() string {
	if k == Footer {
		return RelFooter
	}
	return RelHeader
}

func (k Kind) contentType() string {
	if k == Footer {
		return CTFooter
	}
	return CTHeader
}

// Kinds lists both kinds in schema order.
var Kinds = []Kind{Header, Footer}

// Reference points a section at a header or footer part.
type Reference struct {
	Kind  Kind
	Type  string
	RelID string
}

// Section is a view over one w:sectPr. Sections are numbered in document
// order; the last one is the body-level w:sectPr.
type Section struct {
	Props     *etree.Element
	Index     int
	BodyLevel bool
}

// References returns the header or footer references of the section.
func (s *Section) References(kind Kind) []Reference {
	var out []Reference
	for _, el := range s.Props.SelectElements("w:" + kind.refTag()) {
		out = append(out, Reference{
			Kind:  kind,
			Type:  el.SelectAttrValue("w:type", RefDefault),
			RelID: el.SelectAttrValue("r:id", ""),
		})
	}
	return out
}

// Linked reports whether the section inherits its header or footer from the
// previous section, which is the case when it declares no reference.
func (s *Section) Linked(kind Kind) bool {
	return s.Props.SelectElement("w:"+kind.refTag()) == nil
}

// HeaderLinked reports whether the header is linked to the previous section.
func (s *Section) HeaderLinked() bool { return s.Linked(Header) }

// FooterLinked reports whether the footer is linked to the previous section.
func (s *Section) FooterLinked() bool { return s.Linked(Footer) }

// BreakType returns the section start type; nextPage when unspecified.
func (s *Section) BreakType() string {
	if el := s.Props.SelectElement("w:type"); el != nil {
		if v := wAttr(el, "val"); v != "" {
			return v
		}
	}
	return BreakNextPage
}

// SetBreakType sets the section start type.
func (s *Section) SetBreakType(t string) {
	setW(ensureChild(s.Props, "type", sectPrOrder), "val", t)
}

// ClearReferences removes every reference of the given kind.
func (s *Section) ClearReferences(kind Kind) {
	for _, el := range s.Props.SelectElements("w:" + kind.refTag()) {
		s.Props.RemoveChild(el)
	}
}

// SetReference points the section at relID for the given kind and type,
// replacing an existing reference of the same type.
func (s *Section) SetReference(kind Kind, refType, relID string) {
	for _, el := range s.Props.SelectElements("w:" + kind.refTag()) {
		if el.SelectAttrValue("w:type", RefDefault) == refType {
			el.CreateAttr("r:id", relID)
			return
		}
	}
	el := etree.NewElement("w:" + kind.refTag())
	setW(el, "type", refType)
	el.CreateAttr("r:id", relID)
	insertOrdered(s.Props, el, sectPrOrder)
}

// TitlePage reports whether the section uses a distinct first-page header.
func (s *Section) TitlePage() bool {
	el := s.Props.SelectElement("w:titlePg")
	if el == nil {
		return false
	}
	v := wAttr(el, "val")
	return v == "" || v == "1" || v == "true" || v == "on"
}

// Sections returns the sections of the main document in order. A missing
// body-level w:sectPr is created with default geometry.
func (p *Package) Sections() ([]*Section, error) {
	body, err := p.Body()
	if err != nil {
		return nil, err
	}
	var out []*Section
	for _, el := range body.ChildElements() {
		if sp := paragraphSectPr(el); sp != nil {
			out = append(out, &Section{Props: sp, Index: len(out)})
		}
	}
	out = append(out, &Section{Props: bodySectPr(body), Index: len(out), BodyLevel: true})
	return out, nil
}

// BodySection returns the last section, whose w:sectPr is a child of w:body.
func (p *Package) BodySection() (*Section, error) {
	secs, err := p.Sections()
	if err != nil {
		return nil, err
	}
	return secs[len(secs)-1], nil
}

// SectionContents groups the body elements by the section they belong to.
// Paragraph-level w:sectPr paragraphs end their group.
func (p *Package) SectionContents() ([][]*etree.Element, error) {
	body, err := p.Body()
	if err != nil {
		return nil, err
	}
	var groups [][]*etree.Element
	var current []*etree.Element
	for _, el := range body.ChildElements() {
		if isW(el, "sectPr") {
			continue
		}
		current = append(current, el)
		if paragraphSectPr(el) != nil {
			groups = append(groups, current)
			current = nil
		}
	}
	return append(groups, current), nil
}

// paragraphSectPr returns the w:sectPr carried by a paragraph, or nil.
func paragraphSectPr(el *etree.Element) *etree.Element {
	if !isW(el, "p") {
		return nil
	}
	pPr := el.SelectElement("w:pPr")
	if pPr == nil {
		return nil
	}
	return pPr.SelectElement("w:sectPr")
}

// bodySectPr returns the body-level w:sectPr, appending one when missing.
func bodySectPr(body *etree.Element) *etree.Element {
	if sp := body.SelectElement("w:sectPr"); sp != nil {
		return sp
	}
	sp := NewSectionProperties()
	body.AddChild(sp)
	return sp
}
