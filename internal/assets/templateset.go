package assets

// Fragment names one package of a template set.
type Fragment string

// Template set fragments, in composition order of use.
const (
	FragmentTheme Fragment = "theme"
	FragmentCover Fragment = "cover"
	FragmentEnd   Fragment = "end"
)

// Fragments lists every fragment a template set may hold.
var Fragments = []Fragment{FragmentTheme, FragmentCover, FragmentEnd}

// TemplateSet holds the packages a document is built from. A nil field means
// the set has no such package.
type TemplateSet struct {
	Name  string // Identifier (name or directory path)
	Theme []byte // Styles, page layout, header and footer
	Cover []byte // Cover page with placeholders
	End   []byte // Closing page
}

// Get returns the package bytes of a fragment, nil when absent.
func (ts *TemplateSet) Get(f Fragment) []byte {
	switch f {
	case FragmentTheme:
		return ts.Theme
	case FragmentCover:
		return ts.Cover
	case FragmentEnd:
		return ts.End
	}
	return nil
}

func (ts *TemplateSet) set(f Fragment, data []byte) {
	switch f {
	case FragmentTheme:
		ts.Theme = data
	case FragmentCover:
		ts.Cover = data
	case FragmentEnd:
		ts.End = data
	}
}

// Empty reports whether the set holds no package at all.
func (ts *TemplateSet) Empty() bool {
	return ts.Theme == nil && ts.Cover == nil && ts.End == nil
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"
