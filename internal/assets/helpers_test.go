package assets

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-md2docx/internal/docx"
)

// newSetDir creates {tmp}/templates/{name} and returns the base path and set dir.
func newSetDir(t *testing.T, name string) (string, string) {
	t.Helper()
	base := t.TempDir()
	dir := filepath.Join(base, "templates", name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create set dir: %v", err)
	}
	return base, dir
}

// copyEmbeddedFragment unpacks a bundled fragment tree into dir/{frag}.
func copyEmbeddedFragment(t *testing.T, dir string, frag Fragment) {
	t.Helper()
	sub, err := fs.Sub(templates, "templates/default/"+string(frag))
	if err != nil {
		t.Fatalf("fs.Sub() error = %v", err)
	}
	if err := os.CopyFS(filepath.Join(dir, string(frag)), sub); err != nil {
		t.Fatalf("os.CopyFS() error = %v", err)
	}
}

// writeEmbeddedPackage writes a bundled fragment as dir/{frag}.docx.
func writeEmbeddedPackage(t *testing.T, dir string, frag Fragment) []byte {
	t.Helper()
	ts, err := NewEmbeddedLoader().LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}
	data := ts.Get(frag)
	if err := os.WriteFile(filepath.Join(dir, string(frag)+".docx"), data, 0644); err != nil {
		t.Fatalf("failed to write package: %v", err)
	}
	return data
}

// mustOpen fails the test unless data is a readable package.
func mustOpen(t *testing.T, data []byte) *docx.Package {
	t.Helper()
	pkg, err := docx.Open(data)
	if err != nil {
		t.Fatalf("docx.Open() error = %v", err)
	}
	return pkg
}
