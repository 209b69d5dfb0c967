package docx

import "github.com/beevik/etree"

// Default page geometry in twentieths of a point (US Letter, 1in margins).
const (
	DefaultPageWidth  = 12240
	DefaultPageHeight = 15840
	DefaultMargin     = 1440
)

// NewPackage returns the smallest valid document: one empty paragraph and a
// body section with US Letter geometry, plus Normal style and settings parts.
func NewPackage() *Package {
	pkg := newEmptyPackage()

	ct := newXMLDocument("Types", "", NSContentTypes)
	pkg.PutXML(ContentTypesPart, ct)
	types, _ := pkg.ContentTypes()
	types.SetDefault("rels", CTRels)
	types.SetDefault("xml", CTXML)
	types.SetOverride(DefaultMainPart, CTDocument)

	pkgRels, _ := pkg.Rels("")
	pkgRels.AddPart(RelOfficeDocument, DefaultMainPart)

	doc := newXMLDocument("w:document", "w", NSW, "r", NSR)
	body := doc.Root().CreateElement("w:body")
	body.CreateElement("w:p")
	body.AddChild(NewSectionProperties())
	pkg.PutXML(DefaultMainPart, doc)
	pkg.mainName = DefaultMainPart

	// Errors are impossible here: every part was just created in memory.
	_, _ = pkg.Styles()
	_, _ = pkg.Settings()
	return pkg
}

// NewSectionProperties returns a body-level w:sectPr with default geometry.
func NewSectionProperties() *etree.Element {
	sectPr := etree.NewElement("w:sectPr")
	pgSz := sectPr.CreateElement("w:pgSz")
	setW(pgSz, "w", itoa(DefaultPageWidth))
	setW(pgSz, "h", itoa(DefaultPageHeight))
	pgMar := sectPr.CreateElement("w:pgMar")
	for _, side := range []string{"top", "right", "bottom", "left"} {
		setW(pgMar, side, itoa(DefaultMargin))
	}
	setW(pgMar, "header", "720")
	setW(pgMar, "footer", "720")
	setW(pgMar, "gutter", "0")
	return sectPr
}
