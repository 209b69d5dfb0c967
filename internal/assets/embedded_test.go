package assets

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2docx/internal/docx"
)

func TestEmbeddedLoader_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name    string
		setName string
		wantErr error
	}{
		{name: "loads default set", setName: "default"},
		{name: "returns ErrTemplateSetNotFound for nonexistent", setName: "nonexistent-xyz", wantErr: ErrTemplateSetNotFound},
		{name: "returns ErrInvalidAssetName for empty name", setName: "", wantErr: ErrInvalidAssetName},
		{name: "returns ErrInvalidAssetName for path traversal", setName: "../secret", wantErr: ErrInvalidAssetName},
		{name: "returns ErrInvalidAssetName for name with dot", setName: "set.name", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts, err := loader.LoadTemplateSet(tt.setName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplateSet(%q) error = %v, want %v", tt.setName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplateSet(%q) unexpected error: %v", tt.setName, err)
			}
			if ts.Name != tt.setName {
				t.Errorf("Name = %q, want %q", ts.Name, tt.setName)
			}
			for _, f := range Fragments {
				if ts.Get(f) == nil {
					t.Errorf("fragment %s missing", f)
				}
			}
		})
	}
}

func TestEmbeddedLoader_PackagesOpen(t *testing.T) {
	t.Parallel()

	ts, err := LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}

	t.Run("theme has a footer and heading styles", func(t *testing.T) {
		t.Parallel()

		pkg := mustOpen(t, ts.Theme)
		sec, err := pkg.BodySection()
		if err != nil {
			t.Fatalf("BodySection() error = %v", err)
		}
		if _, ok := pkg.HeaderFooterPart(sec, docx.Footer, docx.RefDefault); !ok {
			t.Error("theme body section has no default footer")
		}
		styles, err := pkg.Styles()
		if err != nil {
			t.Fatalf("Styles() error = %v", err)
		}
		for _, id := range []string{"Heading1", "Heading6", "TOCHeading", "Hyperlink", "TableGrid"} {
			if !styles.Has(id) {
				t.Errorf("style %s missing", id)
			}
		}
	})

	t.Run("cover carries placeholders", func(t *testing.T) {
		t.Parallel()

		pkg := mustOpen(t, ts.Cover)
		body, err := pkg.Body()
		if err != nil {
			t.Fatalf("Body() error = %v", err)
		}
		if text := docx.Text(body); !strings.Contains(text, "{{.Title}}") {
			t.Errorf("cover text = %q, want a {{.Title}} placeholder", text)
		}
	})

	t.Run("end opens", func(t *testing.T) {
		t.Parallel()

		mustOpen(t, ts.End)
	})
}

func TestEmbeddedLoader_FreshBytes(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()
	first, err := loader.LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}
	second, err := loader.LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}

	if !bytes.Equal(first.Theme, second.Theme) {
		t.Error("packing is not deterministic")
	}
	first.Theme[0] ^= 0xff
	if first.Theme[0] == second.Theme[0] {
		t.Error("loads share a buffer")
	}
}

func TestPackDir_EntryOrder(t *testing.T) {
	t.Parallel()

	data, err := packDir(templates, "templates/default/theme")
	if err != nil {
		t.Fatalf("packDir() error = %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	if len(zr.File) < 2 {
		t.Fatalf("entries = %d, want at least 2", len(zr.File))
	}
	if zr.File[0].Name != contentTypesPart {
		t.Errorf("first entry = %q, want %q", zr.File[0].Name, contentTypesPart)
	}
	if zr.File[1].Name != "_rels/.rels" {
		t.Errorf("second entry = %q, want _rels/.rels", zr.File[1].Name)
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "/") || strings.Contains(f.Name, "templates/") {
			t.Errorf("entry %q is not relative to the fragment root", f.Name)
		}
	}
}
