package extract

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"rsc.io/pdf"
)

// PDFTextExtractor reads the text layer of each PDF page. It keeps line breaks
// but no structure, so it serves as the fallback for PDFs tabula rejects.
type PDFTextExtractor struct{}

// NewPDFTextExtractor creates a PDFTextExtractor.
func NewPDFTextExtractor() *PDFTextExtractor {
	return &PDFTextExtractor{}
}

// Name implements Extractor.
func (p *PDFTextExtractor) Name() string { return "pdftext" }

// Accepts implements Extractor.
func (p *PDFTextExtractor) Accepts(f Format) bool { return f == FormatPDF }

// Extract implements Extractor.
func (p *PDFTextExtractor) Extract(ctx context.Context, data []byte, _ Format) (md string, err error) {
	// rsc.io/pdf panics on malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			md, err = "", fmt.Errorf("reading pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, pageText(page.Content().Text))
	}
	return joinPages(pages), nil
}

// pageText lays glyphs out in content stream order. A baseline change starts
// a new line; a horizontal gap wider than a fifth of the font size is a space.
func pageText(glyphs []pdf.Text) string {
	var (
		b     strings.Builder
		prev  pdf.Text
		first = true
	)
	for _, g := range glyphs {
		if !first {
			size := math.Max(prev.FontSize, 1)
			switch {
			case math.Abs(g.Y-prev.Y) > size/2:
				b.WriteByte('\n')
			case g.X-(prev.X+prev.W) > size/5 && g.S != " " && prev.S != " ":
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
		prev, first = g, false
	}
	return b.String()
}

// Compile-time interface check.
var _ Extractor = (*PDFTextExtractor)(nil)
