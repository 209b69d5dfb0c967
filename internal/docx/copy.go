package docx

import (
	"bytes"
	"fmt"
)

// PartCopier copies parts from one package into another together with
// everything they relate to. Relationship ids inside a copied part are kept,
// so its XML needs no rewriting. Each part is copied once per copier.
type PartCopier struct {
	dst, src *Package
	copied   map[string]string
}

// NewPartCopier returns a copier from src into dst.
func NewPartCopier(dst, src *Package) *PartCopier {
	return &PartCopier{dst: dst, src: src, copied: make(map[string]string)}
}

// Copy copies the named src part under a name free in dst and returns it.
func (c *PartCopier) Copy(name string) (string, error) {
	if done, ok := c.copied[name]; ok {
		return done, nil
	}
	part := c.src.Part(name)
	if part == nil {
		return "", fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	data, err := part.Bytes()
	if err != nil {
		return "", err
	}

	newName := c.dst.UniqueName(name)
	c.copied[name] = newName
	c.dst.PutPart(newName, bytes.Clone(data))

	srcTypes, err := c.src.ContentTypes()
	if err != nil {
		return "", err
	}
	dstTypes, err := c.dst.ContentTypes()
	if err != nil {
		return "", err
	}
	dstTypes.Ensure(newName, srcTypes.TypeOf(name))

	if !c.src.HasRels(name) {
		return newName, nil
	}
	srcRels, err := c.src.Rels(name)
	if err != nil {
		return "", err
	}
	dstRels, err := c.dst.Rels(newName)
	if err != nil {
		return "", err
	}
	for _, rel := range srcRels.All() {
		if rel.External {
			dstRels.put(rel.ID, rel.Type, rel.Target, true)
			continue
		}
		target := srcRels.TargetPart(rel)
		if !c.src.HasPart(target) {
			continue
		}
		copiedTarget, err := c.Copy(target)
		if err != nil {
			return "", err
		}
		dstRels.put(rel.ID, rel.Type, dstRels.relativeTarget(copiedTarget), false)
	}
	return newName, nil
}
