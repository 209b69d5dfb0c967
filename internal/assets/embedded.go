package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

//go:embed all:templates
var templates embed.FS

// EmbeddedLoader loads template sets from the embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplateSet packs the bundled part trees of a set into packages.
// Every call returns fresh bytes.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := path.Join("templates", name)
	if _, err := fs.Stat(templates, dir); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}

	ts := &TemplateSet{Name: name}
	for _, f := range Fragments {
		data, err := packDir(templates, path.Join(dir, string(f)))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: packing %s: %v", ErrAssetRead, f, err)
		}
		ts.set(f, data)
	}
	if ts.Empty() {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	return ts, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
