package docx

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Relationship is one entry of a .rels part.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Relationships is the relationship set of one source part. The package
// relationships have source "".
type Relationships struct {
	source string
	root   *etree.Element
}

// relsPartName maps a source part to its relationships part:
// word/document.xml -> word/_rels/document.xml.rels.
func relsPartName(source string) string {
	if source == "" {
		return PackageRelsPart
	}
	dir, file := path.Split(source)
	return dir + "_rels/" + file + ".rels"
}

// HasRels reports whether source has a relationships part.
func (p *Package) HasRels(source string) bool {
	return p.HasPart(relsPartName(source))
}

// Rels returns the relationships of source, creating an empty set when the
// part has none.
func (p *Package) Rels(source string) (*Relationships, error) {
	name := relsPartName(source)
	if r, ok := p.rels[name]; ok {
		return r, nil
	}
	if !p.HasPart(name) {
		p.PutXML(name, newXMLDocument("Relationships", "", NSPkgRels))
	}
	doc, err := p.XML(name)
	if err != nil {
		return nil, err
	}
	r := &Relationships{source: source, root: doc.Root()}
	p.rels[name] = r
	return r, nil
}

func relFromElement(el *etree.Element) Relationship {
	return Relationship{
		ID:       el.SelectAttrValue("Id", ""),
		Type:     el.SelectAttrValue("Type", ""),
		Target:   el.SelectAttrValue("Target", ""),
		External: strings.EqualFold(el.SelectAttrValue("TargetMode", ""), "External"),
	}
}

// All returns every relationship in document order.
func (r *Relationships) All() []Relationship {
	var out []Relationship
	for _, el := range r.root.SelectElements("Relationship") {
		out = append(out, relFromElement(el))
	}
	return out
}

// Get returns the relationship with the given id.
func (r *Relationships) Get(id string) (Relationship, bool) {
	for _, el := range r.root.SelectElements("Relationship") {
		if el.SelectAttrValue("Id", "") == id {
			return relFromElement(el), true
		}
	}
	return Relationship{}, false
}

// ByType returns relationships of the given type.
func (r *Relationships) ByType(relType string) []Relationship {
	var out []Relationship
	for _, rel := range r.All() {
		if rel.Type == relType {
			out = append(out, rel)
		}
	}
	return out
}

// Add appends a relationship and returns its new id.
func (r *Relationships) Add(relType, target string, external bool) string {
	id := r.nextID()
	r.put(id, relType, target, external)
	return id
}

// put adds a relationship under a caller-chosen id.
func (r *Relationships) put(id, relType, target string, external bool) {
	r.Remove(id)
	el := r.root.CreateElement("Relationship")
	el.CreateAttr("Id", id)
	el.CreateAttr("Type", relType)
	el.CreateAttr("Target", target)
	if external {
		el.CreateAttr("TargetMode", "External")
	}
}

// AddPart relates the source to a part of the same package.
func (r *Relationships) AddPart(relType, partName string) string {
	return r.Add(relType, r.relativeTarget(partName), false)
}

// Remove deletes the relationship with the given id.
func (r *Relationships) Remove(id string) {
	for _, el := range r.root.SelectElements("Relationship") {
		if el.SelectAttrValue("Id", "") == id {
			r.root.RemoveChild(el)
			return
		}
	}
}

// TargetPart resolves an internal relationship target to a part name.
func (r *Relationships) TargetPart(rel Relationship) string {
	target := rel.Target
	if unescaped, err := url.PathUnescape(target); err == nil {
		target = unescaped
	}
	if strings.HasPrefix(target, "/") {
		return path.Clean(target[1:])
	}
	return path.Join(path.Dir(r.source), target)
}

func (r *Relationships) relativeTarget(partName string) string {
	dir := path.Dir(r.source)
	if dir == "." {
		return partName
	}
	if strings.HasPrefix(partName, dir+"/") {
		return strings.TrimPrefix(partName, dir+"/")
	}
	return "/" + partName
}

func (r *Relationships) nextID() string {
	used := make(map[string]bool)
	maxN := 0
	for _, el := range r.root.SelectElements("Relationship") {
		id := el.SelectAttrValue("Id", "")
		used[id] = true
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && n > maxN {
			maxN = n
		}
	}
	for n := maxN + 1; ; n++ {
		id := "rId" + strconv.Itoa(n)
		if !used[id] {
			return id
		}
	}
}
