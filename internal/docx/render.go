package docx

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"

	"github.com/alnah/go-md2docx/internal/model"
)

const (
	// maxBookmarkName is the longest bookmark name Word accepts.
	maxBookmarkName = 40

	styleListParagraph = "ListParagraph"
	styleTableGrid     = "TableGrid"
)

// Renderer writes model blocks as WordprocessingML for one package. Style
// ids are resolved against the package styles and fall back to direct
// formatting when a style is missing.
type Renderer struct {
	pkg       *Package
	styles    *Styles
	textWidth int

	nextBookmark int
	bookmarks    map[string]bool

	numbering   *Numbering
	bulletNum   int
	decimalAbs  int
	orderedNums map[int]int

	missing map[string]bool
}

// NewRenderer prepares a renderer for p. Bookmark ids continue after the
// highest id already in the body.
func NewRenderer(p *Package) (*Renderer, error) {
	styles, err := p.Styles()
	if err != nil {
		return nil, err
	}
	body, err := p.Body()
	if err != nil {
		return nil, err
	}
	sec, err := p.BodySection()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		pkg:         p,
		styles:      styles,
		textWidth:   sec.TextWidth(),
		bookmarks:   make(map[string]bool),
		decimalAbs:  -1,
		orderedNums: make(map[int]int),
		missing:     make(map[string]bool),
	}
	for _, bm := range body.FindElements(".//w:bookmarkStart") {
		r.bookmarks[wAttr(bm, "name")] = true
		if id, err := strconv.Atoi(wAttr(bm, "id")); err == nil && id >= r.nextBookmark {
			r.nextBookmark = id + 1
		}
	}
	return r, nil
}

// MissingStyles lists the style ids that were asked for but not defined.
func (r *Renderer) MissingStyles() []string {
	out := make([]string, 0, len(r.missing))
	for id := range r.missing {
		out = append(out, id)
	}
	return out
}

// Render converts blocks to body elements, in order.
func (r *Renderer) Render(blocks []model.Block) ([]*etree.Element, error) {
	out := make([]*etree.Element, 0, len(blocks))
	for i, b := range blocks {
		el, err := r.RenderBlock(b)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, b.Kind(), err)
		}
		out = append(out, el)
	}
	return out, nil
}

// RenderBlock converts one block.
func (r *Renderer) RenderBlock(b model.Block) (*etree.Element, error) {
	switch b := b.(type) {
	case *model.Heading:
		return r.heading(b), nil
	case *model.Paragraph:
		return r.paragraph(b.Text, b.Style), nil
	case *model.ListItem:
		return r.listItem(b)
	case *model.CodeBlock:
		return r.paragraph(b.Text, b.Style), nil
	case *model.Quote:
		return r.paragraph(b.Text, b.Style), nil
	case *model.Table:
		return r.table(b), nil
	default:
		return nil, fmt.Errorf("unsupported block type %T", b)
	}
}

// ---------------------------------------------------------------------------
// Paragraphs
// ---------------------------------------------------------------------------

func (r *Renderer) resolveStyle(id string) string {
	if id == "" {
		return ""
	}
	if r.styles.Has(id) {
		return id
	}
	r.missing[id] = true
	return ""
}

func (r *Renderer) paragraph(text string, style model.TextStyle) *etree.Element {
	p := etree.NewElement("w:p")
	pPr := paragraphProps(style, r.resolveStyle(style.ParagraphStyle))
	if len(pPr.ChildElements()) > 0 {
		p.AddChild(pPr)
	}
	if text != "" {
		p.AddChild(newRun(text, style))
	}
	return p
}

func paragraphProps(style model.TextStyle, styleID string) *etree.Element {
	pPr := etree.NewElement("w:pPr")
	if styleID != "" {
		insertOrdered(pPr, newValElement("pStyle", styleID), pPrOrder)
	}
	if style.Fill != "" {
		insertOrdered(pPr, newShading(style.Fill), pPrOrder)
	}
	if style.Align != model.AlignDefault {
		insertOrdered(pPr, newValElement("jc", string(style.Align)), pPrOrder)
	}
	return pPr
}

func (r *Renderer) heading(h *model.Heading) *etree.Element {
	style := h.Style
	if style.ParagraphStyle == "" {
		style.ParagraphStyle = "Heading" + strconv.Itoa(h.Level)
	}
	p := r.paragraph(h.Text, style)
	pPr := EnsureParagraphProps(p)
	insertOrdered(pPr, newValElement("outlineLvl", strconv.Itoa(h.Level-1)), pPrOrder)

	seed := h.Anchor
	if seed == "" {
		seed = h.Text
	}
	name := r.bookmarkName(seed)
	id := strconv.Itoa(r.nextBookmark)
	r.nextBookmark++

	start := etree.NewElement("w:bookmarkStart")
	setW(start, "id", id)
	setW(start, "name", name)
	end := etree.NewElement("w:bookmarkEnd")
	setW(end, "id", id)
	p.InsertChildAt(pPr.Index()+1, start)
	p.AddChild(end)
	return p
}

// bookmarkName derives a unique bookmark name from heading text. Names
// start with a letter, use underscores and stay within Word's limit.
func (r *Renderer) bookmarkName(text string) string {
	base := strings.ReplaceAll(slug.Make(text), "-", "_")
	if base == "" || !unicode.IsLetter(rune(base[0])) {
		base = "h_" + base
	}
	base = strings.TrimRight(truncate(base, maxBookmarkName), "_")

	name := base
	for n := 2; r.bookmarks[name]; n++ {
		suffix := "_" + strconv.Itoa(n)
		name = truncate(base, maxBookmarkName-len(suffix)) + suffix
	}
	r.bookmarks[name] = true
	return name
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// ---------------------------------------------------------------------------
// Lists
// ---------------------------------------------------------------------------

func (r *Renderer) listItem(item *model.ListItem) (*etree.Element, error) {
	numID, err := r.listNum(item)
	if err != nil {
		return nil, err
	}
	style := item.Style
	if style.ParagraphStyle == "" {
		style.ParagraphStyle = styleListParagraph
	}
	p := r.paragraph(item.Text, style)
	pPr := EnsureParagraphProps(p)
	numPr := etree.NewElement("w:numPr")
	numPr.AddChild(newValElement("ilvl", "0"))
	numPr.AddChild(newValElement("numId", strconv.Itoa(numID)))
	insertOrdered(pPr, numPr, pPrOrder)
	return p, nil
}

// listNum returns the numbering instance for an item. Bullets share one
// instance; every ordered list gets its own so it restarts at 1.
func (r *Renderer) listNum(item *model.ListItem) (int, error) {
	if r.numbering == nil {
		n, err := r.pkg.Numbering()
		if err != nil {
			return 0, err
		}
		r.numbering = n
	}
	if !item.Ordered {
		if r.bulletNum == 0 {
			abs := r.numbering.AddAbstract(NewBulletAbstract())
			r.bulletNum = r.numbering.AddNum(abs, false)
		}
		return r.bulletNum, nil
	}
	if id, ok := r.orderedNums[item.List]; ok {
		return id, nil
	}
	if r.decimalAbs < 0 {
		r.decimalAbs = r.numbering.AddAbstract(NewDecimalAbstract())
	}
	id := r.numbering.AddNum(r.decimalAbs, true)
	r.orderedNums[item.List] = id
	return id, nil
}

// ---------------------------------------------------------------------------
// Tables
// ---------------------------------------------------------------------------

func (r *Renderer) table(t *model.Table) *etree.Element {
	cols := t.Columns()
	if cols == 0 {
		cols = 1
	}
	colWidth := r.textWidth / cols

	tbl := etree.NewElement("w:tbl")
	tblPr := tbl.CreateElement("w:tblPr")
	if id := r.resolveStyle(styleTableGrid); id != "" {
		tblPr.AddChild(newValElement("tblStyle", id))
	}
	tblW := tblPr.CreateElement("w:tblW")
	setW(tblW, "w", "5000")
	setW(tblW, "type", "pct")
	borders := tblPr.CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b := borders.CreateElement("w:" + side)
		setW(b, "val", "single")
		setW(b, "sz", "4")
		setW(b, "space", "0")
		setW(b, "color", "auto")
	}
	look := tblPr.CreateElement("w:tblLook")
	setW(look, "val", "04A0")
	setW(look, "firstRow", "1")
	setW(look, "lastRow", "0")
	setW(look, "firstColumn", "1")
	setW(look, "lastColumn", "0")
	setW(look, "noHBand", "0")
	setW(look, "noVBand", "1")

	grid := tbl.CreateElement("w:tblGrid")
	for i := 0; i < cols; i++ {
		setW(grid.CreateElement("w:gridCol"), "w", strconv.Itoa(colWidth))
	}

	for _, row := range t.Rows {
		tr := tbl.CreateElement("w:tr")
		if isHeaderRow(row) {
			trPr := tr.CreateElement("w:trPr")
			trPr.CreateElement("w:tblHeader")
		}
		for _, cell := range row {
			tr.AddChild(r.cell(cell, colWidth))
		}
	}
	return tbl
}

func isHeaderRow(row []model.Cell) bool {
	for _, c := range row {
		if !c.IsHeader {
			return false
		}
	}
	return len(row) > 0
}

func (r *Renderer) cell(c model.Cell, width int) *etree.Element {
	tc := etree.NewElement("w:tc")
	tcPr := tc.CreateElement("w:tcPr")
	tcW := tcPr.CreateElement("w:tcW")
	setW(tcW, "w", strconv.Itoa(width))
	setW(tcW, "type", "dxa")
	if c.Shading != "" {
		tcPr.AddChild(newShading(c.Shading))
	}
	if c.IsHeader {
		tcPr.AddChild(newValElement("vAlign", "center"))
	}
	tc.AddChild(r.paragraph(c.Text, c.Style))
	return tc
}

// ---------------------------------------------------------------------------
// Runs
// ---------------------------------------------------------------------------

func newShading(fill string) *etree.Element {
	shd := etree.NewElement("w:shd")
	setW(shd, "val", "clear")
	setW(shd, "color", "auto")
	setW(shd, "fill", fill)
	return shd
}

func runProps(style model.TextStyle) *etree.Element {
	rPr := etree.NewElement("w:rPr")
	if style.Font != "" {
		fonts := rPr.CreateElement("w:rFonts")
		for _, key := range []string{"ascii", "hAnsi", "eastAsia", "cs"} {
			setW(fonts, key, style.Font)
		}
	}
	if style.Bold {
		rPr.CreateElement("w:b")
		rPr.CreateElement("w:bCs")
	}
	if style.Italic {
		rPr.CreateElement("w:i")
		rPr.CreateElement("w:iCs")
	}
	if style.Color != "" {
		rPr.AddChild(newValElement("color", style.Color))
	}
	if style.Size > 0 {
		size := strconv.Itoa(int(style.Size))
		rPr.AddChild(newValElement("sz", size))
		rPr.AddChild(newValElement("szCs", size))
	}
	return rPr
}

// newRun builds a run for text. Newlines become w:br and tabs w:tab.
func newRun(text string, style model.TextStyle) *etree.Element {
	run := etree.NewElement("w:r")
	if rPr := runProps(style); len(rPr.ChildElements()) > 0 {
		run.AddChild(rPr)
	}
	text = xmlSafe(strings.ReplaceAll(text, "\r\n", "\n"))
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			run.CreateElement("w:br")
		}
		for j, chunk := range strings.Split(line, "\t") {
			if j > 0 {
				run.CreateElement("w:tab")
			}
			if chunk == "" {
				continue
			}
			t := run.CreateElement("w:t")
			t.CreateAttr("xml:space", "preserve")
			t.SetText(chunk)
		}
	}
	return run
}

// NewTextParagraph builds a plain paragraph holding text.
func NewTextParagraph(text string, style model.TextStyle) *etree.Element {
	p := etree.NewElement("w:p")
	if pPr := paragraphProps(style, style.ParagraphStyle); len(pPr.ChildElements()) > 0 {
		p.AddChild(pPr)
	}
	if text != "" {
		p.AddChild(newRun(text, style))
	}
	return p
}

// NewPageBreak returns a paragraph holding a single page break.
func NewPageBreak() *etree.Element {
	p := etree.NewElement("w:p")
	br := p.CreateElement("w:r").CreateElement("w:br")
	setW(br, "type", "page")
	return p
}
