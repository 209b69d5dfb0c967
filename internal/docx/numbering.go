package docx

import (
	"strconv"

	"github.com/beevik/etree"
)

// Numbering wraps the numbering definitions part.
type Numbering struct {
	root *etree.Element
}

// Numbering returns the numbering part, creating it on first use.
func (p *Package) Numbering() (*Numbering, error) {
	name, err := p.ensureRelatedPart(RelNumbering, "word/numbering.xml", CTNumbering, func() *etree.Document {
		return newXMLDocument("w:numbering", "w", NSW)
	})
	if err != nil {
		return nil, err
	}
	doc, err := p.XML(name)
	if err != nil {
		return nil, err
	}
	return &Numbering{root: doc.Root()}, nil
}

// HasNumbering reports whether the package declares a numbering part.
func (p *Package) HasNumbering() bool {
	_, ok := p.RelatedPart(RelNumbering)
	return ok
}

// Root returns the w:numbering element.
func (n *Numbering) Root() *etree.Element {
	return n.root
}

// AbstractNums returns the w:abstractNum definitions.
func (n *Numbering) AbstractNums() []*etree.Element {
	return n.root.SelectElements("w:abstractNum")
}

// Nums returns the w:num instances.
func (n *Numbering) Nums() []*etree.Element {
	return n.root.SelectElements("w:num")
}

func maxIntAttr(els []*etree.Element, key string) int {
	m := -1
	for _, el := range els {
		if v, err := strconv.Atoi(wAttr(el, key)); err == nil && v > m {
			m = v
		}
	}
	return m
}

// AddAbstract stores an abstract definition under a fresh id and returns it.
// Abstract definitions precede every w:num.
func (n *Numbering) AddAbstract(abs *etree.Element) int {
	id := maxIntAttr(n.AbstractNums(), "abstractNumId") + 1
	setW(abs, "abstractNumId", itoa(id))
	if first := n.root.SelectElement("w:num"); first != nil {
		n.root.InsertChildAt(first.Index(), abs)
		return id
	}
	n.appendBeforeCleanup(abs)
	return id
}

// AddNumElement stores a w:num under a fresh id and returns it. Ids start
// at 1 since 0 means "no numbering".
func (n *Numbering) AddNumElement(num *etree.Element) int {
	id := maxIntAttr(n.Nums(), "numId") + 1
	if id < 1 {
		id = 1
	}
	setW(num, "numId", itoa(id))
	n.appendBeforeCleanup(num)
	return id
}

// AddNum creates a numbering instance of an abstract definition. With
// restart the first level starts again at 1.
func (n *Numbering) AddNum(abstractID int, restart bool) int {
	num := etree.NewElement("w:num")
	num.AddChild(newValElement("abstractNumId", itoa(abstractID)))
	if restart {
		override := num.CreateElement("w:lvlOverride")
		setW(override, "ilvl", "0")
		override.AddChild(newValElement("startOverride", "1"))
	}
	return n.AddNumElement(num)
}

func (n *Numbering) appendBeforeCleanup(el *etree.Element) {
	if cleanup := n.root.SelectElement("w:numIdMacAtCleanup"); cleanup != nil {
		n.root.InsertChildAt(cleanup.Index(), el)
		return
	}
	n.root.AddChild(el)
}

// NewBulletAbstract returns a single-level bullet list definition.
func NewBulletAbstract() *etree.Element {
	return newAbstract("bullet", "•")
}

// NewDecimalAbstract returns a single-level "1." list definition.
func NewDecimalAbstract() *etree.Element {
	return newAbstract("decimal", "%1.")
}

func newAbstract(format, text string) *etree.Element {
	abs := etree.NewElement("w:abstractNum")
	abs.AddChild(newValElement("multiLevelType", "hybridMultilevel"))
	lvl := abs.CreateElement("w:lvl")
	setW(lvl, "ilvl", "0")
	lvl.AddChild(newValElement("start", "1"))
	lvl.AddChild(newValElement("numFmt", format))
	lvl.AddChild(newValElement("lvlText", text))
	lvl.AddChild(newValElement("lvlJc", "left"))
	pPr := lvl.CreateElement("w:pPr")
	ind := pPr.CreateElement("w:ind")
	setW(ind, "left", "720")
	setW(ind, "hanging", "360")
	return abs
}
