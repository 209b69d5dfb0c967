package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-md2docx/internal/model"
)

// MapResult is the outcome of mapping one node sequence.
type MapResult struct {
	Blocks []model.Block
	// Skipped counts nodes that produced no block.
	Skipped int
	// SkippedTags counts skipped nodes by tag name.
	SkippedTags map[string]int
}

// Mapper turns parsed HTML block nodes into document blocks with resolved
// formatting. A Mapper holds no mutable state and may be shared.
type Mapper struct {
	policy model.StylePolicy
	tables *TableRules
}

// NewMapper returns a mapper formatting blocks according to policy.
func NewMapper(policy model.StylePolicy) *Mapper {
	return &Mapper{policy: policy, tables: NewTableRules(policy)}
}

// mapState carries the per-call counters.
type mapState struct {
	result MapResult
	lists  int
}

func (s *mapState) skip(tag string) {
	s.result.Skipped++
	s.result.SkippedTags[tag]++
}

func (s *mapState) add(b model.Block) {
	s.result.Blocks = append(s.result.Blocks, b)
}

// Map converts nodes in order. Unknown elements are skipped and counted,
// never reported as errors.
func (m *Mapper) Map(nodes []*html.Node) MapResult {
	s := &mapState{result: MapResult{SkippedTags: make(map[string]int)}}
	for _, n := range nodes {
		m.mapNode(s, n)
	}
	return s.result
}

func (m *Mapper) mapNode(s *mapState, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if text := tidyLines(whitespaceRun.ReplaceAllString(n.Data, " ")); text != "" {
			s.add(&model.Paragraph{Text: text, Style: m.policy.BodyStyle()})
		}
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		s.add(&model.Heading{
			Level:  level,
			Text:   inlineText(n, false),
			Anchor: attr(n, "id"),
			Style:  m.headingStyle(level),
		})

	case atom.P:
		text := inlineText(n, false)
		if text == "" {
			s.skip(n.Data)
			return
		}
		s.add(&model.Paragraph{Text: text, Style: m.policy.BodyStyle()})

	case atom.Ul, atom.Ol:
		m.mapList(s, n)

	case atom.Pre:
		s.add(&model.CodeBlock{Text: rawText(n), Language: codeLanguage(n), Style: m.codeStyle()})

	case atom.Div:
		if !hasClass(n, codeBlockClass) {
			s.skip(n.Data)
			return
		}
		s.add(&model.CodeBlock{Text: rawText(n), Language: attr(n, "data-lang"), Style: m.codeStyle()})

	case atom.Blockquote:
		m.mapQuote(s, n)

	case atom.Table:
		t := buildTable(n)
		// A table needs at least one cell to be valid WordprocessingML.
		if t.Columns() == 0 {
			s.skip(n.Data)
			return
		}
		m.tables.Apply(t)
		s.add(t)

	default:
		s.skip(n.Data)
	}
}

// mapList emits one item per li, depth first. Nested lists follow their
// parent item with the same indentation and their own numbering.
func (m *Mapper) mapList(s *mapState, list *html.Node) {
	ordered := list.DataAtom == atom.Ol
	ordinal := s.lists
	s.lists++

	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		s.add(&model.ListItem{
			Text:    inlineText(li, true),
			Ordered: ordered,
			List:    ordinal,
			Style:   m.policy.BodyStyle(),
		})
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
				m.mapList(s, c)
			}
		}
	}
}

// mapQuote flattens the blocks inside a blockquote into one Quote.
func (m *Mapper) mapQuote(s *mapState, n *html.Node) {
	inner := &mapState{result: MapResult{SkippedTags: s.result.SkippedTags}, lists: s.lists}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		m.mapNode(inner, c)
	}
	s.result.Skipped += inner.result.Skipped
	s.lists = inner.lists

	parts := make([]string, 0, len(inner.result.Blocks))
	for _, b := range inner.result.Blocks {
		if text := b.PlainText(); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		s.skip(n.Data)
		return
	}
	style := m.policy.BodyStyle()
	style.ParagraphStyle = m.policy.QuoteStyle
	s.add(&model.Quote{Text: strings.Join(parts, "\n"), Style: style})
}

func (m *Mapper) headingStyle(level int) model.TextStyle {
	return model.TextStyle{
		Font:  m.policy.BodyFont,
		Size:  m.policy.HeadingSize(level),
		Bold:  true,
		Color: m.policy.HeadingColor,
	}
}

func (m *Mapper) codeStyle() model.TextStyle {
	return model.TextStyle{
		Font: m.policy.CodeFont,
		Size: m.policy.CodeSize,
		Fill: m.policy.CodeFill,
	}
}

// codeLanguage reads "language-x" from the code element inside pre.
func codeLanguage(pre *html.Node) string {
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Code {
			continue
		}
		for _, class := range strings.Fields(attr(c, "class")) {
			if lang, ok := strings.CutPrefix(class, "language-"); ok {
				return lang
			}
		}
	}
	return ""
}
