package docx

import "fmt"

type snapshotRef struct {
	kind    Kind
	refType string
	part    string
}

// HeaderFooterSnapshot is an owned copy of the header and footer parts one
// section references. It lives in a private package, so later changes to
// the source package cannot reach it.
type HeaderFooterSnapshot struct {
	pkg       *Package
	refs      []snapshotRef
	titlePage bool
}

func newPartStore() *Package {
	pkg := newEmptyPackage()
	pkg.PutXML(ContentTypesPart, newXMLDocument("Types", "", NSContentTypes))
	types, _ := pkg.ContentTypes()
	types.SetDefault("rels", CTRels)
	types.SetDefault("xml", CTXML)
	return pkg
}

// SnapshotHeadersFooters deep-copies the header and footer parts referenced
// by sec, including their own related parts such as images.
func (p *Package) SnapshotHeadersFooters(sec *Section) (*HeaderFooterSnapshot, error) {
	snap := &HeaderFooterSnapshot{pkg: newPartStore(), titlePage: sec.TitlePage()}
	rels, err := p.DocumentRels()
	if err != nil {
		return nil, err
	}
	copier := NewPartCopier(snap.pkg, p)
	for _, kind := range Kinds {
		for _, ref := range sec.References(kind) {
			rel, ok := rels.Get(ref.RelID)
			if !ok || rel.External {
				continue
			}
			name := rels.TargetPart(rel)
			if !p.HasPart(name) {
				continue
			}
			copied, err := copier.Copy(name)
			if err != nil {
				return nil, fmt.Errorf("copying %s %s: %w", ref.Type, kind, err)
			}
			snap.refs = append(snap.refs, snapshotRef{kind: kind, refType: ref.Type, part: copied})
		}
	}
	return snap, nil
}

// Has reports whether the snapshot holds a part of the given kind.
func (s *HeaderFooterSnapshot) Has(kind Kind) bool {
	for _, r := range s.refs {
		if r.kind == kind {
			return true
		}
	}
	return false
}

// Text returns the visible text of a snapshot part, "" when absent.
func (s *HeaderFooterSnapshot) Text(kind Kind, refType string) string {
	for _, r := range s.refs {
		if r.kind == kind && r.refType == refType {
			doc, err := s.pkg.XML(r.part)
			if err != nil {
				return ""
			}
			return Text(doc.Root())
		}
	}
	return ""
}

// CloneInto writes fresh copies of the snapshot parts into p and points sec
// at them, replacing its references. Word links each reference type on its
// own, so every type sec can display gets a part: default always, first
// with a title page, even when the snapshot has even pages. Types the
// snapshot lacks get an empty part. Every call creates new parts.
func (s *HeaderFooterSnapshot) CloneInto(p *Package, sec *Section) error {
	rels, err := p.DocumentRels()
	if err != nil {
		return err
	}
	required := []string{RefDefault}
	if s.titlePage {
		required = append(required, RefFirst)
	}
	if s.hasType(RefEven) {
		required = append(required, RefEven)
	}

	copier := NewPartCopier(p, s.pkg)
	for _, kind := range Kinds {
		sec.ClearReferences(kind)
		set := map[string]bool{}
		for _, r := range s.refs {
			if r.kind != kind {
				continue
			}
			name, err := copier.Copy(r.part)
			if err != nil {
				return fmt.Errorf("copying %s %s: %w", r.refType, kind, err)
			}
			sec.SetReference(kind, r.refType, rels.AddPart(kind.relType(), name))
			set[r.refType] = true
		}
		for _, refType := range required {
			if set[refType] {
				continue
			}
			name, err := p.newEmptyHeaderFooter(kind)
			if err != nil {
				return err
			}
			sec.SetReference(kind, refType, rels.AddPart(kind.relType(), name))
		}
	}
	if s.titlePage {
		ensureChild(sec.Props, "titlePg", sectPrOrder)
	}
	return nil
}

// hasType reports whether any snapshot part has the given reference type.
func (s *HeaderFooterSnapshot) hasType(refType string) bool {
	for _, r := range s.refs {
		if r.refType == refType {
			return true
		}
	}
	return false
}

// EnsureHeaderFooter gives sec an explicit empty header and footer for every
// kind it currently links to its predecessor.
func (p *Package) EnsureHeaderFooter(sec *Section) error {
	rels, err := p.DocumentRels()
	if err != nil {
		return err
	}
	for _, kind := range Kinds {
		if !sec.Linked(kind) {
			continue
		}
		name, err := p.newEmptyHeaderFooter(kind)
		if err != nil {
			return err
		}
		sec.SetReference(kind, RefDefault, rels.AddPart(kind.relType(), name))
	}
	return nil
}

func (p *Package) newEmptyHeaderFooter(kind Kind) (string, error) {
	name := p.UniqueName(kind.defaultName())
	doc := newXMLDocument(kind.rootTag(), "w", NSW, "r", NSR)
	doc.Root().CreateElement("w:p")
	p.PutXML(name, doc)

	types, err := p.ContentTypes()
	if err != nil {
		return "", err
	}
	types.SetOverride(name, kind.contentType())
	return name, nil
}

// HeaderFooterPart returns the part name a section references for the given
// kind and type.
func (p *Package) HeaderFooterPart(sec *Section, kind Kind, refType string) (string, bool) {
	rels, err := p.DocumentRels()
	if err != nil {
		return "", false
	}
	for _, ref := range sec.References(kind) {
		if ref.Type != refType {
			continue
		}
		rel, ok := rels.Get(ref.RelID)
		if !ok || rel.External {
			return "", false
		}
		name := rels.TargetPart(rel)
		return name, p.HasPart(name)
	}
	return "", false
}

// HeaderFooterText returns the visible text of the header or footer a
// section references.
func (p *Package) HeaderFooterText(sec *Section, kind Kind, refType string) (string, error) {
	name, ok := p.HeaderFooterPart(sec, kind, refType)
	if !ok {
		return "", fmt.Errorf("%w: %s %s", ErrPartNotFound, refType, kind)
	}
	doc, err := p.XML(name)
	if err != nil {
		return "", err
	}
	return Text(doc.Root()), nil
}

// NewEmptySnapshot returns a snapshot without parts. Cloning it gives a
// section explicit empty headers and footers.
func NewEmptySnapshot() *HeaderFooterSnapshot {
	return &HeaderFooterSnapshot{pkg: newPartStore()}
}

// PruneHeadersFooters removes header and footer relationships of the main
// document that no section references, along with their parts when nothing
// else targets them. It returns the number of parts removed.
func (p *Package) PruneHeadersFooters() (int, error) {
	secs, err := p.Sections()
	if err != nil {
		return 0, err
	}
	rels, err := p.DocumentRels()
	if err != nil {
		return 0, err
	}
	used := make(map[string]bool)
	for _, sec := range secs {
		for _, kind := range Kinds {
			for _, ref := range sec.References(kind) {
				used[ref.RelID] = true
			}
		}
	}

	targets := make(map[string]int)
	for _, rel := range rels.All() {
		if !rel.External {
			targets[rels.TargetPart(rel)]++
		}
	}

	removed := 0
	for _, rel := range rels.All() {
		if rel.External || used[rel.ID] || (rel.Type != RelHeader && rel.Type != RelFooter) {
			continue
		}
		name := rels.TargetPart(rel)
		rels.Remove(rel.ID)
		targets[name]--
		if targets[name] > 0 || !p.HasPart(name) {
			continue
		}
		p.RemovePart(name)
		removed++
	}
	return removed, nil
}
