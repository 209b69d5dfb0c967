package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/h2non/filetype"
	"go.uber.org/multierr"
)

// MaxUncompressedSize bounds the total size of the parts Open reads.
var MaxUncompressedSize int64 = 256 << 20

// zipEpoch is the fixed modification time written for every entry so that
// identical packages serialize to identical bytes.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Part is one named entry of a package. XML parts are parsed on first use
// and serialized again by Bytes.
type Part struct {
	Name string
	data []byte
	doc  *etree.Document
}

// XML returns the parsed part, parsing it on first call.
func (p *Part) XML() (*etree.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(p.data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPart, p.Name, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: %s: no root element", ErrMalformedPart, p.Name)
	}
	p.doc = doc
	p.data = nil
	return doc, nil
}

// SetXML replaces the part content with doc.
func (p *Part) SetXML(doc *etree.Document) {
	p.doc = doc
	p.data = nil
}

// Bytes returns the serialized part.
func (p *Part) Bytes() ([]byte, error) {
	if p.doc == nil {
		return p.data, nil
	}
	b, err := p.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", p.Name, err)
	}
	return b, nil
}

// Package is an in-memory OPC package holding a WordprocessingML document.
// A Package is not safe for concurrent use.
type Package struct {
	parts    map[string]*Part
	order    []string
	mainName string
	rels     map[string]*Relationships
	ct       *ContentTypes
}

func newEmptyPackage() *Package {
	return &Package{
		parts: make(map[string]*Part),
		rels:  make(map[string]*Relationships),
	}
}

// Open reads a package from zip bytes. It fails with ErrNotPackage when the
// bytes are not a zip with content types and a main document, and with
// ErrMalformedPart when the main document cannot be parsed.
func Open(data []byte) (*Package, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrNotPackage)
	}
	if !filetype.Is(data, "zip") && !filetype.Is(data, "docx") {
		return nil, fmt.Errorf("%w: not a zip archive", ErrNotPackage)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPackage, err)
	}

	pkg := newEmptyPackage()
	var total int64
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		total += int64(f.UncompressedSize64) // #nosec G115 -- bounded below
		if total > MaxUncompressedSize {
			return nil, fmt.Errorf("%w: more than %d bytes uncompressed", ErrPackageTooLarge, MaxUncompressedSize)
		}
		b, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrNotPackage, f.Name, err)
		}
		pkg.PutPart(normalizePartName(f.Name), b)
	}

	if !pkg.HasPart(ContentTypesPart) {
		return nil, fmt.Errorf("%w: missing %s", ErrNotPackage, ContentTypesPart)
	}
	if _, err := pkg.ContentTypes(); err != nil {
		return nil, err
	}
	if err := pkg.resolveMain(); err != nil {
		return nil, err
	}
	if _, err := pkg.Body(); err != nil {
		return nil, err
	}
	return pkg, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, MaxUncompressedSize))
}

func normalizePartName(name string) string {
	return strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "/")
}

func (p *Package) resolveMain() error {
	if p.HasPart(PackageRelsPart) {
		rels, err := p.Rels("")
		if err != nil {
			return err
		}
		for _, rel := range rels.ByType(RelOfficeDocument) {
			if name := rels.TargetPart(rel); p.HasPart(name) {
				p.mainName = name
				return nil
			}
		}
	}
	if p.HasPart(DefaultMainPart) {
		p.mainName = DefaultMainPart
		return nil
	}
	return fmt.Errorf("%w: no main document part", ErrNotPackage)
}

// MainPart returns the name of the main document part.
func (p *Package) MainPart() string {
	return p.mainName
}

// Part returns the named part, or nil.
func (p *Package) Part(name string) *Part {
	return p.parts[name]
}

// HasPart reports whether the named part exists.
func (p *Package) HasPart(name string) bool {
	_, ok := p.parts[name]
	return ok
}

// PartNames returns part names in package order.
func (p *Package) PartNames() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// ParseAll parses every XML part, relationship parts included, and returns
// the errors of all malformed ones. Reads of a package that passed cannot
// fail on markup.
func (p *Package) ParseAll() error {
	types, err := p.ContentTypes()
	if err != nil {
		return err
	}
	var errs error
	for _, name := range p.order {
		if !isXMLPart(name, types.TypeOf(name)) {
			continue
		}
		if _, err := p.parts[name].XML(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func isXMLPart(name, contentType string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".xml", ".rels":
		return true
	}
	return strings.HasSuffix(contentType, "xml")
}

// PutPart stores raw bytes under name, replacing any existing part.
func (p *Package) PutPart(name string, data []byte) *Part {
	if part, ok := p.parts[name]; ok {
		part.data = data
		part.doc = nil
		delete(p.rels, name)
		if name == ContentTypesPart {
			p.ct = nil
		}
		return part
	}
	part := &Part{Name: name, data: data}
	p.parts[name] = part
	p.order = append(p.order, name)
	return part
}

// PutXML stores a parsed XML document under name.
func (p *Package) PutXML(name string, doc *etree.Document) *Part {
	part := p.PutPart(name, nil)
	part.SetXML(doc)
	return part
}

// RemovePart deletes a part, its relationships part and its content type override.
func (p *Package) RemovePart(name string) {
	if _, ok := p.parts[name]; !ok {
		return
	}
	delete(p.parts, name)
	delete(p.rels, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	if relsName := relsPartName(name); p.HasPart(relsName) {
		p.RemovePart(relsName)
	}
	if ct, err := p.ContentTypes(); err == nil {
		ct.RemoveOverride(name)
	}
}

// XML returns the parsed content of the named part.
func (p *Package) XML(name string) (*etree.Document, error) {
	part := p.Part(name)
	if part == nil {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	return part.XML()
}

// UniqueName returns name when it is free, otherwise the first free name
// obtained by numbering its stem: word/header1.xml -> word/header2.xml.
func (p *Package) UniqueName(name string) string {
	if !p.HasPart(name) {
		return name
	}
	dir, file := path.Split(name)
	ext := path.Ext(file)
	stem := strings.TrimRight(strings.TrimSuffix(file, ext), "0123456789")
	for i := 1; ; i++ {
		candidate := dir + stem + strconv.Itoa(i) + ext
		if !p.HasPart(candidate) {
			return candidate
		}
	}
}

// Document returns the parsed main document part.
func (p *Package) Document() (*etree.Document, error) {
	return p.XML(p.mainName)
}

// Body returns the w:body element of the main document.
func (p *Package) Body() (*etree.Element, error) {
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}
	body := doc.Root().SelectElement("w:body")
	if body == nil {
		return nil, fmt.Errorf("%w: %s has no w:body", ErrMalformedPart, p.mainName)
	}
	return body, nil
}

// DocumentRels returns the relationships of the main document part.
func (p *Package) DocumentRels() (*Relationships, error) {
	return p.Rels(p.mainName)
}

// RelatedPart returns the part targeted by the first relationship of relType
// from the main document.
func (p *Package) RelatedPart(relType string) (string, bool) {
	if !p.HasRels(p.mainName) {
		return "", false
	}
	rels, err := p.DocumentRels()
	if err != nil {
		return "", false
	}
	for _, rel := range rels.ByType(relType) {
		if name := rels.TargetPart(rel); !rel.External && p.HasPart(name) {
			return name, true
		}
	}
	return "", false
}

// ensureRelatedPart returns the part related to the main document by relType,
// creating it from build when missing.
func (p *Package) ensureRelatedPart(relType, defaultName, contentType string, build func() *etree.Document) (string, error) {
	if name, ok := p.RelatedPart(relType); ok {
		return name, nil
	}
	name := p.UniqueName(defaultName)
	p.PutXML(name, build())

	rels, err := p.DocumentRels()
	if err != nil {
		return "", err
	}
	rels.AddPart(relType, name)

	ct, err := p.ContentTypes()
	if err != nil {
		return "", err
	}
	ct.SetOverride(name, contentType)
	return name, nil
}

// Bytes serializes the package as a zip archive. [Content_Types].xml and
// the package relationships are written first, then parts in package order.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, name := range p.writeOrder() {
		data, err := p.parts[name].Bytes()
		if err != nil {
			return nil, err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: zipEpoch,
		})
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Package) writeOrder() []string {
	out := make([]string, 0, len(p.order))
	for _, first := range []string{ContentTypesPart, PackageRelsPart} {
		if p.HasPart(first) {
			out = append(out, first)
		}
	}
	for _, name := range p.order {
		if name != ContentTypesPart && name != PackageRelsPart {
			out = append(out, name)
		}
	}
	return out
}

// newXMLDocument creates a document with the standard declaration and a root
// element declaring the given prefix/URI pairs.
func newXMLDocument(rootTag string, namespaces ...string) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDecl)
	root := doc.CreateElement(rootTag)
	for i := 0; i+1 < len(namespaces); i += 2 {
		key := "xmlns"
		if namespaces[i] != "" {
			key += ":" + namespaces[i]
		}
		root.CreateAttr(key, namespaces[i+1])
	}
	return doc
}
