package docx

// XML namespaces.
const (
	NSW            = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NSR            = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NSPkgRels      = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
	NSMC           = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	NSCoreProps    = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	NSDC           = "http://purl.org/dc/elements/1.1/"
	NSDCTerms      = "http://purl.org/dc/terms/"
	NSXSI          = "http://www.w3.org/2001/XMLSchema-instance"
)

// Relationship types.
const (
	RelOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelSettings       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
	RelNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	RelHeader         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	RelFooter         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	RelCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
)

// Content types.
const (
	CTDocument  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	CTStyles    = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	CTSettings  = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
	CTNumbering = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	CTHeader    = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
	CTFooter    = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
	CTRels      = "application/vnd.openxmlformats-package.relationships+xml"
	CTCoreProps = "application/vnd.openxmlformats-package.core-properties+xml"
	CTXML       = "application/xml"
)

// Well-known part names.
const (
	ContentTypesPart = "[Content_Types].xml"
	PackageRelsPart  = "_rels/.rels"
	DefaultMainPart  = "word/document.xml"
	CorePropsPart    = "docProps/core.xml"
)

const xmlDecl = `version="1.0" encoding="UTF-8" standalone="yes"`
