// Package model defines the block elements produced from parsed Markdown and
// the style policy that decides how they look in the output document.
//
// Blocks carry fully resolved formatting. Nothing downstream consults the
// theme to decide fonts or sizes for code, tables, or headings.
package model

// HalfPoints is a font size in half-points, the unit WordprocessingML uses
// for w:sz. 22 is 11pt.
type HalfPoints int

// Alignment is a paragraph justification.
type Alignment string

// Paragraph alignments. AlignDefault leaves the paragraph style in charge.
const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// TextStyle is the resolved formatting of a block or cell.
type TextStyle struct {
	Font   string     // run font, "" keeps the paragraph style font
	Size   HalfPoints // 0 keeps the paragraph style size
	Bold   bool
	Italic bool
	Color  string // RRGGBB, "" = automatic
	Align  Alignment
	// ParagraphStyle is the preferred named style (w:styleId). The renderer
	// falls back to the body style when the target package lacks it.
	ParagraphStyle string
	Fill           string // paragraph shading RRGGBB, "" = none
}

// Kind identifies a block variant.
type Kind int

// Block kinds.
const (
	KindHeading Kind = iota + 1
	KindParagraph
	KindListItem
	KindCodeBlock
	KindQuote
	KindTable
)

var kindNames = map[Kind]string{
	KindHeading:   "heading",
	KindParagraph: "paragraph",
	KindListItem:  "list-item",
	KindCodeBlock: "code-block",
	KindQuote:     "quote",
	KindTable:     "table",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Block is one top-level element of the document body.
type Block interface {
	Kind() Kind
	// PlainText returns the visible text, used for titles and bookmarks.
	PlainText() string
}

// Heading is a section title of level 1 to 6.
type Heading struct {
	Level int
	Text  string
	// Anchor is the id the heading had in the source, if any.
	Anchor string
	Style  TextStyle
}

// Paragraph is body text. Text may contain "\n" for explicit line breaks.
type Paragraph struct {
	Text  string
	Style TextStyle
}

// ListItem is one flattened list entry.
type ListItem struct {
	Text    string
	Ordered bool
	// List identifies the source list. Items of the same ordered list share
	// numbering; a new List value restarts it.
	List  int
	Style TextStyle
}

// CodeBlock is preformatted text. Whitespace is significant.
type CodeBlock struct {
	Text     string
	Language string
	Style    TextStyle
}

// Quote is a block quotation flattened to one paragraph.
type Quote struct {
	Text  string
	Style TextStyle
}

// Cell is one table cell.
type Cell struct {
	Text     string
	IsHeader bool
	Shading  string // RRGGBB fill, "" = none
	Style    TextStyle
}

// Table is a rectangular cell matrix. Row 0 is the header row.
type Table struct {
	Rows [][]Cell
}

// Columns returns the width of the widest row.
func (t *Table) Columns() int {
	n := 0
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func (*Heading) Kind() Kind   { return KindHeading }
func (*Paragraph) Kind() Kind { return KindParagraph }
func (*ListItem) Kind() Kind  { return KindListItem }
func (*CodeBlock) Kind() Kind { return KindCodeBlock }
func (*Quote) Kind() Kind     { return KindQuote }
func (*Table) Kind() Kind     { return KindTable }

func (b *Heading) PlainText() string   { return b.Text }
func (b *Paragraph) PlainText() string { return b.Text }
func (b *ListItem) PlainText() string  { return b.Text }
func (b *CodeBlock) PlainText() string { return b.Text }
func (b *Quote) PlainText() string     { return b.Text }

// PlainText joins cell texts row by row.
func (t *Table) PlainText() string {
	var out []byte
	for i, row := range t.Rows {
		if i > 0 {
			out = append(out, '\n')
		}
		for j, c := range row {
			if j > 0 {
				out = append(out, '\t')
			}
			out = append(out, c.Text...)
		}
	}
	return string(out)
}

// FirstHeading returns the text of the first heading of the given level,
// or "" when there is none.
func FirstHeading(blocks []Block, level int) string {
	for _, b := range blocks {
		if h, ok := b.(*Heading); ok && h.Level == level {
			return h.Text
		}
	}
	return ""
}

// Compile-time interface checks.
var (
	_ Block = (*Heading)(nil)
	_ Block = (*Paragraph)(nil)
	_ Block = (*ListItem)(nil)
	_ Block = (*CodeBlock)(nil)
	_ Block = (*Quote)(nil)
	_ Block = (*Table)(nil)
)
