package compose

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/beevik/etree"

	"github.com/alnah/go-md2docx/internal/docx"
)

// CoverData holds the values cover placeholders such as {{.Title}} expand to.
type CoverData struct {
	Title        string
	Subtitle     string
	Author       string
	Organization string
	Date         string
	Version      string
}

// FillCover expands template placeholders in the text of the main document
// and of every header and footer of pkg. Placeholders split across runs are
// expanded paragraph-wide, which keeps the formatting of the first run. Text
// that is not a valid template is left unchanged. It returns the number of
// text nodes changed.
func FillCover(pkg *docx.Package, data CoverData) (int, error) {
	doc, err := pkg.Document()
	if err != nil {
		return 0, err
	}
	roots := []*etree.Element{doc.Root()}

	rels, err := pkg.DocumentRels()
	if err != nil {
		return 0, err
	}
	for _, rel := range rels.All() {
		if rel.External || (rel.Type != docx.RelHeader && rel.Type != docx.RelFooter) {
			continue
		}
		name := rels.TargetPart(rel)
		if !pkg.HasPart(name) {
			continue
		}
		part, err := pkg.XML(name)
		if err != nil {
			return 0, err
		}
		roots = append(roots, part.Root())
	}

	changed := 0
	for _, root := range roots {
		for _, p := range root.FindElements(".//w:p") {
			changed += fillParagraph(p, data)
		}
	}
	return changed, nil
}

func fillParagraph(p *etree.Element, data CoverData) int {
	var texts []*etree.Element
	for _, r := range p.SelectElements("w:r") {
		texts = append(texts, r.SelectElements("w:t")...)
	}

	changed := 0
	for _, t := range texts {
		if out, ok := expand(t.Text(), data); ok {
			t.SetText(out)
			changed++
		}
	}
	// Expanded values are never parsed again.
	if changed > 0 || len(texts) < 2 {
		return changed
	}

	var whole strings.Builder
	for _, t := range texts {
		whole.WriteString(t.Text())
	}
	out, ok := expand(whole.String(), data)
	if !ok {
		return changed
	}
	texts[0].SetText(out)
	texts[0].CreateAttr("xml:space", "preserve")
	for _, t := range texts[1:] {
		t.SetText("")
	}
	return changed + 1
}

// expand renders s as a template when it contains a complete placeholder.
func expand(s string, data CoverData) (string, bool) {
	open := strings.Index(s, "{{")
	if open < 0 || !strings.Contains(s[open:], "}}") {
		return "", false
	}
	tmpl, err := template.New("cover").Option("missingkey=zero").Parse(s)
	if err != nil {
		return "", false
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", false
	}
	if buf.String() == s {
		return "", false
	}
	return buf.String(), true
}
