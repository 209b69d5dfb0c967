package docx

import (
	"path"
	"strings"

	"github.com/beevik/etree"
)

// ContentTypes wraps [Content_Types].xml.
type ContentTypes struct {
	root *etree.Element
}

// ContentTypes returns the package content type map.
func (p *Package) ContentTypes() (*ContentTypes, error) {
	if p.ct != nil {
		return p.ct, nil
	}
	doc, err := p.XML(ContentTypesPart)
	if err != nil {
		return nil, err
	}
	p.ct = &ContentTypes{root: doc.Root()}
	return p.ct, nil
}

func partNameKey(name string) string {
	return "/" + strings.TrimPrefix(name, "/")
}

// Default returns the default content type for an extension (without dot).
func (c *ContentTypes) Default(ext string) string {
	for _, el := range c.root.SelectElements("Default") {
		if strings.EqualFold(el.SelectAttrValue("Extension", ""), ext) {
			return el.SelectAttrValue("ContentType", "")
		}
	}
	return ""
}

// Override returns the override content type of a part.
func (c *ContentTypes) Override(name string) string {
	if el := c.findOverride(name); el != nil {
		return el.SelectAttrValue("ContentType", "")
	}
	return ""
}

// TypeOf returns the effective content type of a part.
func (c *ContentTypes) TypeOf(name string) string {
	if ct := c.Override(name); ct != "" {
		return ct
	}
	return c.Default(strings.TrimPrefix(path.Ext(name), "."))
}

// SetDefault registers a default for an extension when none exists.
func (c *ContentTypes) SetDefault(ext, contentType string) {
	if c.Default(ext) != "" {
		return
	}
	el := etree.NewElement("Default")
	el.CreateAttr("Extension", ext)
	el.CreateAttr("ContentType", contentType)
	// Defaults precede overrides.
	if first := c.root.SelectElement("Override"); first != nil {
		c.root.InsertChildAt(first.Index(), el)
		return
	}
	c.root.AddChild(el)
}

// SetOverride sets the content type of a part.
func (c *ContentTypes) SetOverride(name, contentType string) {
	if el := c.findOverride(name); el != nil {
		el.CreateAttr("ContentType", contentType)
		return
	}
	el := c.root.CreateElement("Override")
	el.CreateAttr("PartName", partNameKey(name))
	el.CreateAttr("ContentType", contentType)
}

// Ensure makes the effective type of a part equal contentType, adding an
// override only when the extension default differs.
func (c *ContentTypes) Ensure(name, contentType string) {
	if contentType == "" || c.TypeOf(name) == contentType {
		return
	}
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext != "" && c.Default(ext) == "" && !strings.HasSuffix(contentType, "+xml") {
		c.SetDefault(ext, contentType)
		return
	}
	c.SetOverride(name, contentType)
}

// RemoveOverride drops the override of a part.
func (c *ContentTypes) RemoveOverride(name string) {
	if el := c.findOverride(name); el != nil {
		c.root.RemoveChild(el)
	}
}

func (c *ContentTypes) findOverride(name string) *etree.Element {
	key := partNameKey(name)
	for _, el := range c.root.SelectElements("Override") {
		if strings.EqualFold(el.SelectAttrValue("PartName", ""), key) {
			return el
		}
	}
	return nil
}
