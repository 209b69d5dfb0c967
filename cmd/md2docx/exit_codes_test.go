package main

// Notes:
// - exitCodeFor: we test the sentinel errors from md2docx, config and the
//   CLI itself, plus wrapped errors to verify the errors.Is() chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/dateutil"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Conversion errors (exit 4)
		{"conversion failed", md2docx.ErrConversionFailed, ExitConversion},
		{"extraction failed", md2docx.ErrExtractionFailed, ExitConversion},
		{"wrapped conversion failed", fmt.Errorf("doc.md: %w", md2docx.ErrConversionFailed), ExitConversion},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"read package", ErrReadPackage, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write document", ErrWriteDocument, ExitIO},
		{"empty file", md2docx.ErrEmptyFile, ExitIO},
		{"file too large", md2docx.ErrFileTooLarge, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"invalid flags", ErrInvalidFlags, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"date format", dateutil.ErrInvalidDateFormat, ExitUsage},
		{"metadata date", md2docx.ErrInvalidDateFormat, ExitUsage},
		{"toc depth", md2docx.ErrInvalidTOCDepth, ExitUsage},
		{"style policy", md2docx.ErrInvalidStylePolicy, ExitUsage},
		{"template set not found", md2docx.ErrTemplateSetNotFound, ExitUsage},
		{"invalid template set", md2docx.ErrInvalidTemplateSet, ExitUsage},
		{"invalid asset path", md2docx.ErrInvalidAssetPath, ExitUsage},
		{"unsupported format", md2docx.ErrUnsupportedFormat, ExitUsage},
		{"wrapped config not found", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("unknown"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitConversion} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell reserved codes", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWithHint - Actionable hints
// ---------------------------------------------------------------------------

func TestWithHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{"nil", nil, ""},
		{"config not found", config.ErrConfigNotFound, "use --config"},
		{"template set", md2docx.ErrTemplateSetNotFound, "available: default"},
		{"invalid package", md2docx.ErrInvalidTemplateSet, "Word Document"},
		{"unsupported format", md2docx.ErrUnsupportedFormat, ".docx, .pdf"},
		{"no hint", ErrNoInput, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := withHint(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Errorf("withHint(nil) = %v", got)
				}
				return
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("withHint() lost the cause: %v", got)
			}
			if tt.wantHint == "" {
				if got != tt.err {
					t.Errorf("withHint() = %q, want unchanged", got)
				}
				return
			}
			if msg := got.Error(); !strings.Contains(msg, "hint:") || !strings.Contains(msg, tt.wantHint) {
				t.Errorf("withHint() = %q, want hint %q", msg, tt.wantHint)
			}
		})
	}
}
