package md2docx

import (
	"errors"

	"github.com/alnah/go-md2docx/internal/assets"
)

// DefaultTemplateSet is the name of the built-in template set.
const DefaultTemplateSet = assets.DefaultTemplateSetName

// AssetLoader loads template sets. Implementations may read from the
// filesystem, embedded assets, object storage, a database...
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadTemplateSet loads the theme, cover and end packages of a set.
	// Returns ErrTemplateSetNotFound if the set does not exist.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the .docx packages documents are built from. Each
// package is optional.
type TemplateSet struct {
	Name  string // identifier (name or path)
	Theme []byte // styles, page layout, header and footer of the body
	Cover []byte // first pages, with {{.Title}} style placeholders
	End   []byte // closing pages
}

// NewTemplateSet creates a TemplateSet from package bytes.
func NewTemplateSet(name string, theme, cover, end []byte) *TemplateSet {
	return &TemplateSet{Name: name, Theme: theme, Cover: cover, End: end}
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain templates/{name}/ with theme, cover
// and end packages, each either a .docx file or an unpacked directory.
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal resolver to return public types.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return toPublicSet(ts), nil
}

// publicToInternalAdapter lets a caller-provided loader stand in for the
// internal one.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return toInternalSet(ts), nil
}

func toPublicSet(ts *assets.TemplateSet) *TemplateSet {
	return &TemplateSet{Name: ts.Name, Theme: ts.Theme, Cover: ts.Cover, End: ts.End}
}

func toInternalSet(ts *TemplateSet) *assets.TemplateSet {
	if ts == nil {
		return &assets.TemplateSet{}
	}
	return &assets.TemplateSet{Name: ts.Name, Theme: ts.Theme, Cover: ts.Cover, End: ts.End}
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrTemplateSetNotFound), errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrNotPackage), errors.Is(err, assets.ErrAssetTooLarge),
		errors.Is(err, assets.ErrAssetRead):
		return wrapError(ErrInvalidTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError creates an error that reads like original and matches sentinel
// with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel; internal errors stay internal.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
