package md2docx

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/extract"
)

var (
	defaultOnce      sync.Once
	defaultConverter *Converter
	defaultErr       error
)

func sharedConverter() (*Converter, error) {
	defaultOnce.Do(func() {
		defaultConverter, defaultErr = NewConverter()
	})
	return defaultConverter, defaultErr
}

// ConvertMarkdownToDocument converts Markdown to a .docx package using the
// bundled template set. A nil or unusable theme falls back to the bundled
// one. The result always opens, even for empty Markdown.
func ConvertMarkdownToDocument(markdown, theme []byte) ([]byte, error) {
	conv, err := sharedConverter()
	if err != nil {
		return nil, err
	}
	res, err := conv.Convert(context.Background(), Input{Markdown: markdown, Theme: theme})
	if err != nil {
		return nil, err
	}
	return res.DOCX, nil
}

// DefaultMaxExtractBytes is the largest upload ExtractMarkdown accepts.
const DefaultMaxExtractBytes = extract.DefaultMaxBytes

// ExtractOption configures ExtractMarkdown.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	log      *zap.Logger
	maxBytes int
}

// WithExtractLogger sets the logger used during extraction.
func WithExtractLogger(log *zap.Logger) ExtractOption {
	return func(c *extractConfig) { c.log = log }
}

// WithMaxBytes overrides DefaultMaxExtractBytes.
func WithMaxBytes(n int) ExtractOption {
	return func(c *extractConfig) { c.maxBytes = n }
}

// ExtractMarkdown turns an uploaded .docx or .pdf file into Markdown. The
// format comes from the file name and must match the content. Errors match
// ErrUnsupportedFormat, ErrEmptyFile, ErrFileTooLarge or ErrExtractionFailed.
func ExtractMarkdown(ctx context.Context, filename string, data []byte, opts ...ExtractOption) (string, error) {
	var cfg extractConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	svc := extract.New(extract.WithLogger(cfg.log), extract.WithMaxBytes(cfg.maxBytes))
	return svc.Extract(ctx, filename, data)
}

// SupportedExtractFormats lists the accepted file extensions.
func SupportedExtractFormats() []string {
	return extract.Allowed()
}
