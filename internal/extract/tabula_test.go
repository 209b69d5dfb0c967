package extract

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestTabulaExtractor_DOCX(t *testing.T) {
	t.Parallel()

	e := NewTabulaExtractor(zaptest.NewLogger(t))
	if !e.Accepts(FormatDOCX) || !e.Accepts(FormatPDF) {
		t.Fatal("TabulaExtractor must accept both formats")
	}

	got, err := e.Extract(context.Background(), buildDOCX(t, "Quarterly numbers"), FormatDOCX)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(got, "Quarterly numbers") {
		t.Errorf("markdown %q missing paragraph text", got)
	}
}

func TestTabulaExtractor_Corrupt(t *testing.T) {
	t.Parallel()

	e := NewTabulaExtractor(nil)
	if _, err := e.Extract(context.Background(), []byte("PK\x03\x04 truncated"), FormatDOCX); err == nil {
		t.Error("Extract() error = nil for a truncated package")
	}
}
