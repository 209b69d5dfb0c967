package compose

import (
	"strings"
	"testing"

	"github.com/alnah/go-md2docx/internal/docx"
)

func TestFillCover(t *testing.T) {
	t.Parallel()

	data := CoverData{Title: "Annual Report", Author: "Jane Doe", Date: "2026-01-02"}

	tests := []struct {
		name        string
		paragraph   string
		want        string
		wantChanged int
	}{
		{
			name:        "single run",
			paragraph:   `<w:p><w:r><w:t>{{.Title}}</w:t></w:r></w:p>`,
			want:        "Annual Report",
			wantChanged: 1,
		},
		{
			name:        "mixed text",
			paragraph:   `<w:p><w:r><w:t>By {{.Author}} on {{.Date}}</w:t></w:r></w:p>`,
			want:        "By Jane Doe on 2026-01-02",
			wantChanged: 1,
		},
		{
			name:        "split across runs",
			paragraph:   `<w:p><w:r><w:t>{{.Ti</w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>tle}}</w:t></w:r></w:p>`,
			want:        "Annual Report",
			wantChanged: 1,
		},
		{
			name:        "empty field",
			paragraph:   `<w:p><w:r><w:t>v{{.Version}}</w:t></w:r></w:p>`,
			want:        "v",
			wantChanged: 1,
		},
		{
			name:      "unknown field left alone",
			paragraph: `<w:p><w:r><w:t>{{.Publisher}}</w:t></w:r></w:p>`,
			want:      "{{.Publisher}}",
		},
		{
			name:      "invalid template left alone",
			paragraph: `<w:p><w:r><w:t>{{ if }}</w:t></w:r></w:p>`,
			want:      "{{ if }}",
		},
		{
			name:      "plain text",
			paragraph: `<w:p><w:r><w:t>No placeholders</w:t></w:r></w:p>`,
			want:      "No placeholders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := packageWithText(t)
			appendBody(t, p, element(t, tt.paragraph))

			changed, err := FillCover(p, data)
			if err != nil {
				t.Fatalf("FillCover() error = %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %d, want %d", changed, tt.wantChanged)
			}
			if got := strings.TrimSpace(bodyText(t, p)); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFillCover_HeaderAndFooter(t *testing.T) {
	t.Parallel()

	p := packageWithText(t, "{{.Title}}")
	setHeader(t, p, "{{.Organization}}")

	if _, err := FillCover(p, CoverData{Title: "T", Organization: "Acme Corp"}); err != nil {
		t.Fatalf("FillCover() error = %v", err)
	}
	sec, _ := p.BodySection()
	if got := headerText(t, p, sec); got != "Acme Corp" {
		t.Errorf("header = %q, want Acme Corp", got)
	}
	if got := strings.TrimSpace(bodyText(t, p)); got != "T" {
		t.Errorf("body = %q, want T", got)
	}
}

func TestFillCover_KeepsFirstRunFormatting(t *testing.T) {
	t.Parallel()

	p := packageWithText(t)
	appendBody(t, p, element(t,
		`<w:p><w:r><w:rPr><w:i/></w:rPr><w:t>{{.</w:t></w:r><w:r><w:t>Subtitle}}</w:t></w:r></w:p>`))
	if _, err := FillCover(p, CoverData{Subtitle: "Sub"}); err != nil {
		t.Fatalf("FillCover() error = %v", err)
	}

	body, _ := p.Body()
	runs := body.FindElements(".//w:r")
	if got := docx.Text(runs[0]); got != "Sub" {
		t.Errorf("first run = %q, want Sub", got)
	}
	if runs[0].FindElement("w:rPr/w:i") == nil {
		t.Error("first run lost its formatting")
	}
	if got := docx.Text(runs[1]); got != "" {
		t.Errorf("second run = %q, want empty", got)
	}
}

func TestFillCover_ValuesAreNotTemplates(t *testing.T) {
	t.Parallel()

	p := packageWithText(t)
	appendBody(t, p, element(t, `<w:p><w:r><w:t>{{.Title}}</w:t></w:r><w:r><w:t> by me</w:t></w:r></w:p>`))
	if _, err := FillCover(p, CoverData{Title: "{{.Author}}", Author: "leaked"}); err != nil {
		t.Fatalf("FillCover() error = %v", err)
	}
	if got := strings.TrimSpace(bodyText(t, p)); got != "{{.Author}} by me" {
		t.Errorf("text = %q, want the title value verbatim", got)
	}
}
