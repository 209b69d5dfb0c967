package compose

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/beevik/etree"

	"github.com/alnah/go-md2docx/internal/docx"
)

// maxBookmarkName is the longest bookmark name Word accepts.
const maxBookmarkName = 40

// Elements whose targets live in parts a fragment does not bring along.
var droppedTags = map[string]bool{
	"footnoteReference": true,
	"endnoteReference":  true,
	"commentReference":  true,
	"commentRangeStart": true,
	"commentRangeEnd":   true,
}

type mergeStats struct {
	styles  int
	nums    int
	rels    int
	dropped int
}

// merger rewrites copied fragment XML so it is valid inside the base
// package. One merger serves one Append call.
type merger struct {
	base, frag         *docx.Package
	baseRels, fragRels *docx.Relationships
	copier             *docx.PartCopier
	fragNS             map[string]string

	relIDs map[string]string

	styleSeen map[string]bool
	numIDs    map[string]string
	absIDs    map[string]int

	bookmarkIDs   map[string]string
	nextBookmark  int
	bookmarkNames map[string]string
	nextDocPr     int

	stats mergeStats
}

func newMerger(base, frag *docx.Package) (*merger, error) {
	baseDoc, err := base.Document()
	if err != nil {
		return nil, err
	}
	fragDoc, err := frag.Document()
	if err != nil {
		return nil, err
	}
	baseRels, err := base.DocumentRels()
	if err != nil {
		return nil, err
	}
	fragRels, err := frag.DocumentRels()
	if err != nil {
		return nil, err
	}

	m := &merger{
		base:          base,
		frag:          frag,
		baseRels:      baseRels,
		fragRels:      fragRels,
		copier:        docx.NewPartCopier(base, frag),
		fragNS:        namespaces(fragDoc.Root()),
		relIDs:        make(map[string]string),
		styleSeen:     make(map[string]bool),
		numIDs:        make(map[string]string),
		absIDs:        make(map[string]int),
		bookmarkIDs:   make(map[string]string),
		bookmarkNames: make(map[string]string),
	}
	docx.MergeNamespaces(baseDoc.Root(), fragDoc.Root())

	taken := make(map[string]bool)
	maxBookmark, maxDocPr := -1, 0
	walk(baseDoc.Root(), func(el *etree.Element) {
		switch {
		case isW(el, "bookmarkStart"):
			taken[el.SelectAttrValue("w:name", "")] = true
			maxBookmark = max(maxBookmark, intAttr(el, "w:id"))
		case el.Tag == "docPr":
			maxDocPr = max(maxDocPr, intAttr(el, "id"))
		}
	})
	m.nextBookmark = maxBookmark + 1
	m.nextDocPr = maxDocPr + 1

	// Names are settled before any rewriting since hyperlinks may precede
	// the bookmark they target.
	walk(fragDoc.Root(), func(el *etree.Element) {
		if !isW(el, "bookmarkStart") {
			return
		}
		name := el.SelectAttrValue("w:name", "")
		if name == "" || !taken[name] {
			taken[name] = true
			return
		}
		renamed := uniqueName(name, taken)
		taken[renamed] = true
		m.bookmarkNames[name] = renamed
	})
	return m, nil
}

// rewrite fixes relationship ids, style and numbering references, bookmark
// ids and names, and drawing ids in the subtree rooted at el. Elements
// pointing into parts that are not copied are removed.
func (m *merger) rewrite(root *etree.Element) error {
	var drop []*etree.Element
	var visit func(el *etree.Element) error
	visit = func(el *etree.Element) error {
		if el.Space == "w" && droppedTags[el.Tag] {
			drop = append(drop, el)
			return nil
		}
		if err := m.rewriteElement(el); err != nil {
			return err
		}
		for _, c := range el.ChildElements() {
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(root); err != nil {
		return err
	}
	for _, el := range drop {
		if p := el.Parent(); p != nil {
			p.RemoveChild(el)
		}
	}
	m.stats.dropped += len(drop)
	return nil
}

func (m *merger) rewriteElement(el *etree.Element) error {
	for i := range el.Attr {
		a := &el.Attr[i]
		if !m.isRelAttr(a) {
			continue
		}
		id, err := m.relID(a.Value)
		if err != nil {
			return err
		}
		a.Value = id
	}

	if el.Tag == "docPr" && el.SelectAttr("id") != nil {
		el.CreateAttr("id", strconv.Itoa(m.nextDocPr))
		m.nextDocPr++
		return nil
	}
	if el.Space != "w" {
		return nil
	}

	switch el.Tag {
	case "pStyle", "rStyle", "tblStyle", "basedOn", "next", "link":
		return m.style(el.SelectAttrValue("w:val", ""))
	case "numId":
		id, err := m.num(el.SelectAttrValue("w:val", ""))
		if err != nil {
			return err
		}
		el.CreateAttr("w:val", id)
	case "bookmarkStart":
		m.rewriteBookmarkID(el)
		if renamed, ok := m.bookmarkNames[el.SelectAttrValue("w:name", "")]; ok {
			el.CreateAttr("w:name", renamed)
		}
	case "bookmarkEnd":
		m.rewriteBookmarkID(el)
	case "hyperlink":
		if renamed, ok := m.bookmarkNames[el.SelectAttrValue("w:anchor", "")]; ok {
			el.CreateAttr("w:anchor", renamed)
		}
	}
	return nil
}

// isRelAttr reports whether a is in the relationships namespace of the
// fragment document.
func (m *merger) isRelAttr(a *etree.Attr) bool {
	if a.Space == "" || a.Space == "xmlns" {
		return false
	}
	if uri, ok := m.fragNS[a.Space]; ok {
		return uri == docx.NSR
	}
	return a.Space == "r"
}

// relID re-creates a fragment relationship in the base and returns its new
// id. Internal targets are copied with everything they relate to.
func (m *merger) relID(old string) (string, error) {
	if id, ok := m.relIDs[old]; ok {
		return id, nil
	}
	rel, ok := m.fragRels.Get(old)
	if !ok {
		return old, nil
	}

	var id string
	if rel.External {
		id = m.baseRels.Add(rel.Type, rel.Target, true)
	} else {
		target := m.fragRels.TargetPart(rel)
		if !m.frag.HasPart(target) {
			return old, nil
		}
		name, err := m.copier.Copy(target)
		if err != nil {
			return "", fmt.Errorf("unable to copy %s: %w", target, err)
		}
		id = m.baseRels.AddPart(rel.Type, name)
	}
	m.relIDs[old] = id
	m.stats.rels++
	return id, nil
}

// style copies a fragment style the base lacks, with the styles it builds
// on. A style id the base already defines keeps the base definition.
func (m *merger) style(id string) error {
	if id == "" || m.styleSeen[id] {
		return nil
	}
	m.styleSeen[id] = true
	if !m.frag.HasStyles() {
		return nil
	}
	fragStyles, err := m.frag.Styles()
	if err != nil {
		return err
	}
	src := fragStyles.Get(id)
	if src == nil {
		return nil
	}
	baseStyles, err := m.base.Styles()
	if err != nil {
		return err
	}
	if baseStyles.Has(id) {
		return nil
	}

	docx.MergeNamespaces(baseStyles.Root(), fragStyles.Root())
	cp := src.Copy()
	cp.RemoveAttr("w:default")
	if err := m.rewrite(cp); err != nil {
		return err
	}
	baseStyles.Add(cp)
	m.stats.styles++
	return nil
}

// num copies a fragment numbering instance and its abstract definition into
// the base under fresh ids. Unknown ids map to 0, i.e. no numbering.
func (m *merger) num(id string) (string, error) {
	if id == "" || id == "0" {
		return id, nil
	}
	if mapped, ok := m.numIDs[id]; ok {
		return mapped, nil
	}
	m.numIDs[id] = "0"
	if !m.frag.HasNumbering() {
		return "0", nil
	}
	fragNum, err := m.frag.Numbering()
	if err != nil {
		return "", err
	}
	src := findByAttr(fragNum.Nums(), "w:numId", id)
	if src == nil {
		return "0", nil
	}
	absRef := src.SelectElement("w:abstractNumId")
	if absRef == nil {
		return "0", nil
	}
	oldAbs := absRef.SelectAttrValue("w:val", "")

	baseNum, err := m.base.Numbering()
	if err != nil {
		return "", err
	}
	newAbs, ok := m.absIDs[oldAbs]
	if !ok {
		abs := findByAttr(fragNum.AbstractNums(), "w:abstractNumId", oldAbs)
		if abs == nil {
			return "0", nil
		}
		docx.MergeNamespaces(baseNum.Root(), fragNum.Root())
		cp := abs.Copy()
		if nsid := cp.SelectElement("w:nsid"); nsid != nil {
			cp.RemoveChild(nsid)
		}
		if err := m.rewrite(cp); err != nil {
			return "", err
		}
		newAbs = baseNum.AddAbstract(cp)
		m.absIDs[oldAbs] = newAbs
	}

	cp := src.Copy()
	cp.SelectElement("w:abstractNumId").CreateAttr("w:val", strconv.Itoa(newAbs))
	mapped := strconv.Itoa(baseNum.AddNumElement(cp))
	m.numIDs[id] = mapped
	m.stats.nums++
	return mapped, nil
}

func (m *merger) rewriteBookmarkID(el *etree.Element) {
	old := el.SelectAttrValue("w:id", "")
	id, ok := m.bookmarkIDs[old]
	if !ok {
		id = strconv.Itoa(m.nextBookmark)
		m.nextBookmark++
		m.bookmarkIDs[old] = id
	}
	el.CreateAttr("w:id", id)
}

// uniqueName appends _2, _3, ... to name until it is free, keeping within
// the bookmark name length limit.
func uniqueName(name string, taken map[string]bool) string {
	for n := 2; ; n++ {
		suffix := "_" + strconv.Itoa(n)
		base := name
		if len(base)+len(suffix) > maxBookmarkName {
			cut := maxBookmarkName - len(suffix)
			for cut > 0 && !utf8.RuneStart(base[cut]) {
				cut--
			}
			base = base[:cut]
		}
		if candidate := base + suffix; !taken[candidate] {
			return candidate
		}
	}
}

func namespaces(root *etree.Element) map[string]string {
	out := make(map[string]string)
	for _, a := range root.Attr {
		if a.Space == "xmlns" {
			out[a.Key] = a.Value
		}
	}
	return out
}

func walk(el *etree.Element, fn func(*etree.Element)) {
	fn(el)
	for _, c := range el.ChildElements() {
		walk(c, fn)
	}
}

func findByAttr(els []*etree.Element, key, value string) *etree.Element {
	for _, el := range els {
		if el.SelectAttrValue(key, "") == value {
			return el
		}
	}
	return nil
}

func intAttr(el *etree.Element, key string) int {
	v, err := strconv.Atoi(el.SelectAttrValue(key, ""))
	if err != nil {
		return -1
	}
	return v
}

func isW(el *etree.Element, tag string) bool {
	return el.Space == "w" && el.Tag == tag
}
