package compose

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/docx"
)

// ErrNoBody is returned by Compose when the body package is nil.
var ErrNoBody = errors.New("no body package to compose")

// Composer assembles the output document: Cover, then the buffered Body,
// then End.
//
// Appending a fragment with a single section merges its content into the
// trailing section of the base, and the fragment's w:sectPr is dropped. A
// fragment with several sections closes the base's trailing section first,
// so each of its sections keeps its own page layout, header and footer.
type Composer struct {
	log *zap.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *zap.Logger) Option {
	return func(c *Composer) {
		if log != nil {
			c.log = log
		}
	}
}

// NewComposer returns a composer.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose merges the fragments in order. cover and end may be nil. With a
// cover the result is the cover package, extended in place; otherwise it is
// body. Fragments appended to the base are only read.
func (c *Composer) Compose(cover, body, end *docx.Package) (*docx.Package, error) {
	if body == nil {
		return nil, ErrNoBody
	}

	base := body
	if cover != nil {
		base = cover
		if err := c.Append(base, body); err != nil {
			return nil, fmt.Errorf("unable to append body: %w", err)
		}
		if err := carryDirectives(base, body); err != nil {
			return nil, fmt.Errorf("unable to carry body settings: %w", err)
		}
	}
	if end != nil {
		if err := c.Append(base, end); err != nil {
			return nil, fmt.Errorf("unable to append end: %w", err)
		}
	}
	return base, nil
}

// Append copies the content of frag to the end of base.
func (c *Composer) Append(base, frag *docx.Package) error {
	baseSecs, err := base.Sections()
	if err != nil {
		return err
	}
	fragSecs, err := frag.Sections()
	if err != nil {
		return err
	}
	baseBody, err := base.Body()
	if err != nil {
		return err
	}
	fragBody, err := frag.Body()
	if err != nil {
		return err
	}

	m, err := newMerger(base, frag)
	if err != nil {
		return err
	}

	fragSectPr := fragSecs[len(fragSecs)-1].Props
	var content []*etree.Element
	for _, el := range fragBody.ChildElements() {
		if el != fragSectPr {
			content = append(content, el.Copy())
		}
	}
	for _, el := range content {
		if err := m.rewrite(el); err != nil {
			return err
		}
	}

	baseSectPr := baseSecs[len(baseSecs)-1].Props
	multi := len(fragSecs) > 1
	if multi {
		sectPr := fragSectPr.Copy()
		if err := m.rewrite(sectPr); err != nil {
			return err
		}
		closeTrailingSection(baseBody, baseSectPr)
		for _, el := range content {
			baseBody.AddChild(el)
		}
		baseBody.AddChild(sectPr)
	} else {
		docx.InsertBefore(baseSectPr, content...)
	}

	c.log.Debug("Fragment appended",
		zap.Int("elements", len(content)),
		zap.Int("fragment_sections", len(fragSecs)),
		zap.Bool("multi_section", multi),
		zap.Int("styles_copied", m.stats.styles),
		zap.Int("numbering_copied", m.stats.nums),
		zap.Int("relationships_copied", m.stats.rels),
		zap.Int("dropped", m.stats.dropped))
	return nil
}

// closeTrailingSection moves the body-level w:sectPr into the last
// paragraph. A new empty paragraph is used when the body ends with anything
// else or the last paragraph already closes a section.
func closeTrailingSection(body, sectPr *etree.Element) {
	body.RemoveChild(sectPr)

	var last *etree.Element
	if children := body.ChildElements(); len(children) > 0 {
		last = children[len(children)-1]
	}
	if last == nil || last.Space != "w" || last.Tag != "p" || docx.ParagraphSectPr(last) != nil {
		last = etree.NewElement("w:p")
		body.AddChild(last)
	}
	docx.SetParagraphSectPr(last, sectPr)
}

// carryDirectives copies the package-level field directives of src, which
// live in its settings part, onto dst.
func carryDirectives(dst, src *docx.Package) error {
	from, err := src.Settings()
	if err != nil {
		return err
	}
	to, err := dst.Settings()
	if err != nil {
		return err
	}
	if from.UpdateFields() {
		to.SetUpdateFields(true)
	}
	if v := from.View(); v != "" {
		to.SetView(v)
	}
	return nil
}
