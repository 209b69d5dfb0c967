package docx

import (
	"strconv"

	"github.com/beevik/etree"
)

// StripContent empties the body, keeping only its final w:sectPr, and puts
// one empty placeholder paragraph in front of it. Parts referenced by the
// removed content stay in the package.
func (p *Package) StripContent() (*etree.Element, error) {
	body, err := p.Body()
	if err != nil {
		return nil, err
	}
	sectPr := bodySectPr(body)
	for _, c := range body.ChildElements() {
		if c != sectPr {
			body.RemoveChild(c)
		}
	}
	placeholder := etree.NewElement("w:p")
	body.InsertChildAt(sectPr.Index(), placeholder)
	return placeholder, nil
}

// AppendToBody inserts elements at the end of the body, before the
// body-level w:sectPr.
func (p *Package) AppendToBody(els ...*etree.Element) error {
	body, err := p.Body()
	if err != nil {
		return err
	}
	InsertBefore(bodySectPr(body), els...)
	return nil
}

// InsertBefore places els right before anchor, in order.
func InsertBefore(anchor *etree.Element, els ...*etree.Element) {
	parent := anchor.Parent()
	idx := anchor.Index()
	for i, el := range els {
		parent.InsertChildAt(idx+i, el)
	}
}

// TextWidth returns the usable width of the section in twips.
func (s *Section) TextWidth() int {
	width := DefaultPageWidth
	left, right := DefaultMargin, DefaultMargin
	if pgSz := s.Props.SelectElement("w:pgSz"); pgSz != nil {
		if v, err := strconv.Atoi(wAttr(pgSz, "w")); err == nil {
			width = v
		}
	}
	if pgMar := s.Props.SelectElement("w:pgMar"); pgMar != nil {
		if v, err := strconv.Atoi(wAttr(pgMar, "left")); err == nil {
			left = v
		}
		if v, err := strconv.Atoi(wAttr(pgMar, "right")); err == nil {
			right = v
		}
	}
	if w := width - left - right; w > 0 {
		return w
	}
	return DefaultPageWidth - 2*DefaultMargin
}

// EnsureParagraphProps returns the w:pPr of a paragraph, creating it first.
func EnsureParagraphProps(p *etree.Element) *etree.Element {
	if pPr := p.SelectElement("w:pPr"); pPr != nil {
		return pPr
	}
	pPr := etree.NewElement("w:pPr")
	p.InsertChildAt(0, pPr)
	return pPr
}

// SetParagraphSectPr attaches sectPr to a paragraph as its last property.
func SetParagraphSectPr(p, sectPr *etree.Element) {
	pPr := EnsureParagraphProps(p)
	if old := pPr.SelectElement("w:sectPr"); old != nil {
		pPr.RemoveChild(old)
	}
	insertOrdered(pPr, sectPr, pPrOrder)
}

// ParagraphSectPr returns the w:sectPr carried by a paragraph, or nil.
func ParagraphSectPr(p *etree.Element) *etree.Element {
	return paragraphSectPr(p)
}

// BodySectPr returns the body-level w:sectPr of the main document.
func (p *Package) BodySectPr() (*etree.Element, error) {
	body, err := p.Body()
	if err != nil {
		return nil, err
	}
	return bodySectPr(body), nil
}
