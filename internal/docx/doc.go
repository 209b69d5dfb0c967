// Package docx reads, edits and writes WordprocessingML packages.
//
// A Package holds the OPC parts of one .docx file. XML parts are parsed
// lazily into etree documents and written back when the package is
// serialized. On top of the raw parts the package offers:
//   - relationships and content types bookkeeping
//   - sections with their header/footer references and break types
//   - the settings, styles, numbering and core properties parts
//   - deep copies of parts across packages (PartCopier)
//   - header/footer snapshots that outlive edits to their source
//   - a Renderer turning model blocks into body elements
//
// Packages are not safe for concurrent use. Each conversion owns its own.
package docx
