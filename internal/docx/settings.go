package docx

import "github.com/beevik/etree"

// Settings wraps the document settings part.
type Settings struct {
	root *etree.Element
}

// Settings returns the settings part, creating it when the package has none.
func (p *Package) Settings() (*Settings, error) {
	name, err := p.ensureRelatedPart(RelSettings, "word/settings.xml", CTSettings, func() *etree.Document {
		return newXMLDocument("w:settings", "w", NSW)
	})
	if err != nil {
		return nil, err
	}
	doc, err := p.XML(name)
	if err != nil {
		return nil, err
	}
	return &Settings{root: doc.Root()}, nil
}

// SetUpdateFields asks the consuming application to refresh fields on open.
// Repeated calls update the same element.
func (s *Settings) SetUpdateFields(on bool) {
	setW(ensureChild(s.root, "updateFields", settingsOrder), "val", onOff(on))
}

// UpdateFields reports whether fields are refreshed on open.
func (s *Settings) UpdateFields() bool {
	el := s.root.SelectElement("w:updateFields")
	if el == nil {
		return false
	}
	return isOn(wAttr(el, "val"))
}

// SetView sets the default view, e.g. "print" or "web".
func (s *Settings) SetView(view string) {
	setW(ensureChild(s.root, "view", settingsOrder), "val", view)
}

// View returns the default view, "" when unset.
func (s *Settings) View() string {
	if el := s.root.SelectElement("w:view"); el != nil {
		return wAttr(el, "val")
	}
	return ""
}

// Count returns how many w:tag children the settings carry.
func (s *Settings) Count(tag string) int {
	return len(s.root.SelectElements("w:" + tag))
}

// Elements returns the settings children in document order.
func (s *Settings) Elements() []*etree.Element {
	return s.root.ChildElements()
}

func onOff(on bool) string {
	if on {
		return "true"
	}
	return "false"
}

func isOn(v string) bool {
	switch v {
	case "", "1", "true", "on":
		return true
	}
	return false
}
