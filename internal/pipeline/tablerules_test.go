package pipeline

import (
	"testing"

	"github.com/alnah/go-md2docx/internal/model"
)

func TestTableRules_Apply(t *testing.T) {
	t.Parallel()

	policy := model.DefaultStylePolicy()
	tbl := &model.Table{Rows: [][]model.Cell{
		{{Text: "h1"}, {Text: "h2"}},
		{{Text: "a", IsHeader: true, Shading: "FF0000"}, {Text: "b"}},
		{{Text: "c"}, {Text: "d"}},
	}}

	NewTableRules(policy).Apply(tbl)

	for _, c := range tbl.Rows[0] {
		if !c.IsHeader {
			t.Errorf("header cell %q: IsHeader = false", c.Text)
		}
		if c.Shading != policy.HeaderFill {
			t.Errorf("header cell %q: Shading = %q, want %q", c.Text, c.Shading, policy.HeaderFill)
		}
		want := model.TextStyle{
			Font:  policy.BodyFont,
			Size:  policy.HeaderSize,
			Bold:  true,
			Color: policy.HeaderColor,
			Align: model.AlignCenter,
		}
		if c.Style != want {
			t.Errorf("header cell %q: Style = %+v, want %+v", c.Text, c.Style, want)
		}
	}

	for _, row := range tbl.Rows[1:] {
		for _, c := range row {
			if c.IsHeader || c.Shading != "" {
				t.Errorf("body cell %q: IsHeader = %v, Shading = %q; want plain", c.Text, c.IsHeader, c.Shading)
			}
			if c.Style.Bold || c.Style.Size != policy.TableBodySize || c.Style.Align != model.AlignLeft {
				t.Errorf("body cell %q: Style = %+v", c.Text, c.Style)
			}
		}
	}
}

func TestTableRules_PolicyOverride(t *testing.T) {
	t.Parallel()

	policy := model.DefaultStylePolicy().Merge(model.StylePolicy{HeaderFill: "00AA00", TableBodySize: 18})
	tbl := &model.Table{Rows: [][]model.Cell{{{Text: "h"}}, {{Text: "b"}}}}
	NewTableRules(policy).Apply(tbl)

	if got := tbl.Rows[0][0].Shading; got != "00AA00" {
		t.Errorf("header Shading = %q, want 00AA00", got)
	}
	if got := tbl.Rows[1][0].Style.Size; got != 18 {
		t.Errorf("body Size = %d, want 18", got)
	}
}
