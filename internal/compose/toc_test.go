package compose

import (
	"errors"
	"testing"

	"github.com/beevik/etree"

	"github.com/alnah/go-md2docx/internal/model"
)

// fieldTokens lists the fldChar types and instruction texts of p in order.
func fieldTokens(p *etree.Element) []string {
	var out []string
	for _, r := range p.SelectElements("w:r") {
		for _, c := range r.ChildElements() {
			switch c.Tag {
			case "fldChar":
				out = append(out, c.SelectAttrValue("w:fldCharType", ""))
			case "instrText":
				out = append(out, "instr:"+c.Text())
			}
		}
	}
	return out
}

// siblingBefore returns the element n positions before el.
func siblingBefore(t *testing.T, el *etree.Element, n int) *etree.Element {
	t.Helper()
	siblings := el.Parent().ChildElements()
	for i, s := range siblings {
		if s == el && i >= n {
			return siblings[i-n]
		}
	}
	t.Fatalf("no element %d before %s", n, el.Tag)
	return nil
}

func TestTOCOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      TOCOptions
		wantInstr string
		wantErr   bool
	}{
		{name: "defaults", opts: TOCOptions{}, wantInstr: `TOC \o "1-3" \h \z \u`},
		{name: "custom range", opts: TOCOptions{MinDepth: 2, MaxDepth: 4}, wantInstr: `TOC \o "2-4" \h \z \u`},
		{name: "single level", opts: TOCOptions{MinDepth: 1, MaxDepth: 1}, wantInstr: `TOC \o "1-1" \h \z \u`},
		{name: "max too deep", opts: TOCOptions{MaxDepth: 7}, wantErr: true},
		{name: "min above max", opts: TOCOptions{MinDepth: 4, MaxDepth: 2}, wantErr: true},
		{name: "negative", opts: TOCOptions{MinDepth: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTOCDepth) {
					t.Errorf("Validate() = %v, want ErrInvalidTOCDepth", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if got := tt.opts.Instruction(); got != tt.wantInstr {
				t.Errorf("Instruction() = %q, want %q", got, tt.wantInstr)
			}
		})
	}
}

func TestInsertTOC_TokenSequence(t *testing.T) {
	t.Parallel()

	p, first := buildBody(t, themeWithHeader(t, ""), paragraph("Body starts here"))
	if err := InsertTOC(p, first, TOCOptions{}); err != nil {
		t.Fatalf("InsertTOC() error = %v", err)
	}

	body, _ := p.Body()
	var fields []*etree.Element
	for _, el := range body.ChildElements() {
		if len(FieldInstructions(el)) > 0 {
			fields = append(fields, el)
		}
	}
	if len(fields) != 1 {
		t.Fatalf("field paragraphs = %d, want 1", len(fields))
	}

	got := fieldTokens(fields[0])
	want := []string{"begin", `instr: TOC \o "1-3" \h \z \u `, "separate", "end"}
	if len(got) != len(want) {
		t.Fatalf("tokens = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}

	// The field opens the Body Section and a page break follows it.
	secs := sections(t, p)
	groups, _ := p.SectionContents()
	bodyGroup := groups[len(secs)-1]
	if bodyGroup[0] != fields[0] {
		t.Error("field paragraph does not open the body section")
	}
	if br := bodyGroup[1].FindElement(".//w:br[@w:type='page']"); br == nil {
		t.Error("no page break after the field")
	}
	if bodyGroup[2] != first {
		t.Error("body content does not follow the page break")
	}
}

func TestInsertTOC_Directives(t *testing.T) {
	t.Parallel()

	p, first := buildBody(t, themeWithHeader(t, ""), paragraph("x"))
	for range 2 {
		if err := InsertTOC(p, first, TOCOptions{}); err != nil {
			t.Fatalf("InsertTOC() error = %v", err)
		}
	}

	settings, err := p.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if !settings.UpdateFields() {
		t.Error("updateFields not set")
	}
	if settings.View() != "print" {
		t.Errorf("view = %q, want print", settings.View())
	}
	for _, tag := range []string{"updateFields", "view"} {
		if n := settings.Count(tag); n != 1 {
			t.Errorf("%s elements = %d, want 1", tag, n)
		}
	}
}

func TestInsertTOC_Title(t *testing.T) {
	t.Parallel()

	t.Run("direct formatting without TOCHeading style", func(t *testing.T) {
		t.Parallel()

		p, first := buildBody(t, themeWithHeader(t, ""), paragraph("x"))
		opts := TOCOptions{Title: "Contents", TitleStyle: model.TextStyle{Bold: true, Size: 32}}
		if err := InsertTOC(p, first, opts); err != nil {
			t.Fatalf("InsertTOC() error = %v", err)
		}
		title := siblingBefore(t, first, 3)
		if got := title.FindElement(".//w:t"); got == nil || got.Text() != "Contents" {
			t.Fatalf("title paragraph missing")
		}
		if title.FindElement(".//w:rPr/w:b") == nil {
			t.Error("title is not bold")
		}
	})

	t.Run("TOCHeading style when defined", func(t *testing.T) {
		t.Parallel()

		p, first := buildBody(t, themeWithHeader(t, ""), paragraph("x"))
		styles, _ := p.Styles()
		styles.Add(element(t, `<w:style w:type="paragraph" w:styleId="TOCHeading"><w:name w:val="TOC Heading"/></w:style>`))

		if err := InsertTOC(p, first, TOCOptions{Title: "Contents"}); err != nil {
			t.Fatalf("InsertTOC() error = %v", err)
		}
		body, _ := p.Body()
		found := false
		for _, el := range body.FindElements(".//w:pStyle") {
			if el.SelectAttrValue("w:val", "") == "TOCHeading" {
				found = true
			}
		}
		if !found {
			t.Error("title does not use the TOCHeading style")
		}
	})
}

func TestInsertTOC_Placeholder(t *testing.T) {
	t.Parallel()

	p, first := buildBody(t, themeWithHeader(t, ""), paragraph("x"))
	if err := InsertTOC(p, first, TOCOptions{Placeholder: "Update the field"}); err != nil {
		t.Fatalf("InsertTOC() error = %v", err)
	}
	field := siblingBefore(t, first, 2)
	if got := fieldTokens(field); len(got) != 4 {
		t.Errorf("tokens = %q, want 4", got)
	}
	if tx := field.FindElement(".//w:t"); tx == nil || tx.Text() != "Update the field" {
		t.Error("placeholder result missing")
	}
}

func TestInsertTOC_Errors(t *testing.T) {
	t.Parallel()

	p, first := buildBody(t, themeWithHeader(t, ""), paragraph("x"))
	if err := InsertTOC(p, nil, TOCOptions{}); err == nil {
		t.Error("InsertTOC(nil anchor) error = nil")
	}
	if err := InsertTOC(p, first, TOCOptions{MaxDepth: 9}); !errors.Is(err, ErrInvalidTOCDepth) {
		t.Errorf("InsertTOC(bad depth) = %v, want ErrInvalidTOCDepth", err)
	}
}
