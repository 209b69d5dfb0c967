package docx

import (
	"time"
)

// CoreProperties are the Dublin Core metadata of a package.
type CoreProperties struct {
	Title       string
	Subject     string
	Creator     string
	Description string
	Identifier  string
	Created     time.Time
}

func (p *Package) corePropsPart() (string, error) {
	rels, err := p.Rels("")
	if err != nil {
		return "", err
	}
	for _, rel := range rels.ByType(RelCoreProps) {
		if name := rels.TargetPart(rel); p.HasPart(name) {
			return name, nil
		}
	}

	name := p.UniqueName(CorePropsPart)
	p.PutXML(name, newXMLDocument("cp:coreProperties",
		"cp", NSCoreProps, "dc", NSDC, "dcterms", NSDCTerms, "xsi", NSXSI))
	rels.AddPart(RelCoreProps, name)

	types, err := p.ContentTypes()
	if err != nil {
		return "", err
	}
	types.SetOverride(name, CTCoreProps)
	return name, nil
}

// SetCoreProperties writes the non-empty fields, creating the core
// properties part when the package has none.
func (p *Package) SetCoreProperties(props CoreProperties) error {
	name, err := p.corePropsPart()
	if err != nil {
		return err
	}
	doc, err := p.XML(name)
	if err != nil {
		return err
	}
	root := doc.Root()

	set := func(tag, value string) {
		if value == "" {
			return
		}
		el := root.SelectElement(tag)
		if el == nil {
			el = root.CreateElement(tag)
		}
		el.SetText(xmlSafe(value))
	}
	set("dc:title", props.Title)
	set("dc:subject", props.Subject)
	set("dc:creator", props.Creator)
	set("dc:description", props.Description)
	set("dc:identifier", props.Identifier)

	if !props.Created.IsZero() {
		set("dcterms:created", props.Created.UTC().Format(time.RFC3339))
		root.SelectElement("dcterms:created").CreateAttr("xsi:type", "dcterms:W3CDTF")
	}
	return nil
}

// CoreProperties reads the metadata of the package.
func (p *Package) CoreProperties() (CoreProperties, error) {
	var props CoreProperties
	if !p.HasRels("") {
		return props, nil
	}
	rels, err := p.Rels("")
	if err != nil {
		return props, err
	}
	for _, rel := range rels.ByType(RelCoreProps) {
		doc, err := p.XML(rels.TargetPart(rel))
		if err != nil {
			return props, err
		}
		root := doc.Root()
		get := func(tag string) string {
			if el := root.SelectElement(tag); el != nil {
				return el.Text()
			}
			return ""
		}
		props.Title = get("dc:title")
		props.Subject = get("dc:subject")
		props.Creator = get("dc:creator")
		props.Description = get("dc:description")
		props.Identifier = get("dc:identifier")
		if t, err := time.Parse(time.RFC3339, get("dcterms:created")); err == nil {
			props.Created = t
		}
		break
	}
	return props, nil
}
