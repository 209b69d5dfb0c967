package pipeline

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-md2docx/internal/model"
)

// TableRules formats table cells. Row 0 is the header row whatever its
// markup said; the theme has no say in either row kind.
type TableRules struct {
	header model.TextStyle
	body   model.TextStyle
	fill   string
}

// NewTableRules builds the rules from a style policy.
func NewTableRules(policy model.StylePolicy) *TableRules {
	return &TableRules{
		header: model.TextStyle{
			Font:  policy.BodyFont,
			Size:  policy.HeaderSize,
			Bold:  true,
			Color: policy.HeaderColor,
			Align: model.AlignCenter,
		},
		body: model.TextStyle{
			Font:  policy.BodyFont,
			Size:  policy.TableBodySize,
			Align: model.AlignLeft,
		},
		fill: policy.HeaderFill,
	}
}

// Apply sets the formatting of every cell of t.
func (r *TableRules) Apply(t *model.Table) {
	for i, row := range t.Rows {
		for j := range row {
			cell := &row[j]
			if i == 0 {
				cell.IsHeader = true
				cell.Shading = r.fill
				cell.Style = r.header
				continue
			}
			cell.IsHeader = false
			cell.Shading = ""
			cell.Style = r.body
		}
	}
}

// buildTable reads the rows of a table element, in thead, tbody, tfoot or
// directly under the table, and pads ragged rows to the widest one.
func buildTable(n *html.Node) *model.Table {
	var rows [][]model.Cell
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Thead, atom.Tbody, atom.Tfoot:
				walk(c)
			case atom.Tr:
				rows = append(rows, buildRow(c))
			}
		}
	}
	walk(n)

	t := &model.Table{Rows: rows}
	cols := t.Columns()
	for i, row := range t.Rows {
		for len(row) < cols {
			row = append(row, model.Cell{})
		}
		t.Rows[i] = row
	}
	return t
}

func buildRow(tr *html.Node) []model.Cell {
	var cells []model.Cell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Td || c.DataAtom == atom.Th {
			cells = append(cells, model.Cell{Text: inlineText(c, false)})
		}
	}
	return cells
}
