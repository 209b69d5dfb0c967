package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsawler/tabula"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// TabulaExtractor converts Word and PDF files with tabula. Tabula reads from
// disk, so the bytes go through a temporary file.
type TabulaExtractor struct {
	log *zap.Logger
}

// NewTabulaExtractor creates a TabulaExtractor. A nil logger discards output.
func NewTabulaExtractor(log *zap.Logger) *TabulaExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &TabulaExtractor{log: log}
}

// Name implements Extractor.
func (t *TabulaExtractor) Name() string { return "tabula" }

// Accepts implements Extractor.
func (t *TabulaExtractor) Accepts(f Format) bool {
	return f == FormatDOCX || f == FormatPDF
}

// Extract implements Extractor.
func (t *TabulaExtractor) Extract(ctx context.Context, data []byte, f Format) (md string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, cleanup, err := fileutil.WriteTempFile(data, strings.TrimPrefix(string(f), "."))
	if err != nil {
		return "", err
	}
	defer multierr.AppendFunc(&err, cleanup)

	defer func() {
		if r := recover(); r != nil {
			md, err = "", fmt.Errorf("tabula panicked: %v", r)
		}
	}()

	md, warnings, err := tabula.Open(path).ToMarkdown()
	if err != nil {
		return "", err
	}
	if len(warnings) > 0 {
		t.log.Debug("Tabula reported warnings", zap.Int("count", len(warnings)))
	}
	return md, nil
}

// Compile-time interface check.
var _ Extractor = (*TabulaExtractor)(nil)
