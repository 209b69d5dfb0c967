package extract

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DefaultMaxBytes bounds an upload.
const DefaultMaxBytes = 3 << 20

// Extractor converts the bytes of one document into Markdown.
type Extractor interface {
	// Name identifies the extractor in logs and errors.
	Name() string
	// Accepts reports whether the extractor handles the format.
	Accepts(f Format) bool
	// Extract returns raw Markdown; the Service normalizes it.
	Extract(ctx context.Context, data []byte, f Format) (string, error)
}

// Service validates uploads and dispatches them to extractors.
type Service struct {
	log        *zap.Logger
	maxBytes   int
	extractors []Extractor
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMaxBytes sets the upload size limit. Values <= 0 keep the default.
func WithMaxBytes(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// WithExtractors replaces the extractor chain.
func WithExtractors(extractors ...Extractor) Option {
	return func(s *Service) {
		s.extractors = extractors
	}
}

// New creates a Service using tabula for both formats and page text as the
// PDF fallback.
func New(opts ...Option) *Service {
	s := &Service{
		log:      zap.NewNop(),
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.extractors == nil {
		s.extractors = []Extractor{
			NewTabulaExtractor(s.log),
			NewPDFTextExtractor(),
		}
	}
	return s
}

// MaxBytes returns the configured size limit.
func (s *Service) MaxBytes() int {
	return s.maxBytes
}

// Extract converts a .docx or .pdf file into Markdown.
func (s *Service) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if _, err := FormatFromName(filename); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if len(data) > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes, max allowed is %d", ErrFileTooLarge, len(data), s.maxBytes)
	}
	format, err := DetectFormat(filename, data)
	if err != nil {
		return "", err
	}

	var (
		errs  error
		empty bool
	)
	for _, e := range s.extractors {
		if !e.Accepts(format) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		start := time.Now()
		md, err := e.Extract(ctx, data, format)
		if err != nil {
			s.log.Warn("Extractor failed", zap.String("extractor", e.Name()), zap.String("file", filename), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		md = Normalize(md)
		if md == "" {
			// Scanned pages come back empty; give the next extractor a chance.
			empty = true
			continue
		}
		s.log.Debug("Extracted markdown",
			zap.String("extractor", e.Name()),
			zap.String("file", filename),
			zap.Int("bytes", len(md)),
			zap.Duration("elapsed", time.Since(start)))
		return md, nil
	}

	if empty {
		return "", nil
	}
	if errs == nil {
		return "", fmt.Errorf("%w: no extractor for %s", ErrExtractionFailed, format)
	}
	return "", fmt.Errorf("%w: %v", ErrExtractionFailed, errs)
}
