package model

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidPolicy indicates a StylePolicy field is out of range.
var ErrInvalidPolicy = errors.New("invalid style policy")

// Size limits accepted by WordprocessingML for w:sz.
const (
	MinSize HalfPoints = 2
	MaxSize HalfPoints = 3276
)

var hexColorPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// StylePolicy holds the fixed formatting choices applied to generated
// content. It is a value: copy it, override fields, pass it on.
type StylePolicy struct {
	BodyFont string     `yaml:"bodyFont"`
	BodySize HalfPoints `yaml:"bodySize"`

	// HeadingSizes is indexed by level-1.
	HeadingSizes [6]HalfPoints `yaml:"headingSizes"`
	HeadingColor string        `yaml:"headingColor"`

	CodeFont string     `yaml:"codeFont"`
	CodeSize HalfPoints `yaml:"codeSize"`
	CodeFill string     `yaml:"codeFill"`

	// QuoteStyle is used when the target package defines it.
	QuoteStyle string `yaml:"quoteStyle"`

	HeaderFill    string     `yaml:"headerFill"`
	HeaderColor   string     `yaml:"headerColor"`
	HeaderSize    HalfPoints `yaml:"headerSize"`
	TableBodySize HalfPoints `yaml:"tableBodySize"`
}

// DefaultStylePolicy returns the built-in policy.
func DefaultStylePolicy() StylePolicy {
	return StylePolicy{
		BodyFont:      "Calibri",
		BodySize:      22,
		HeadingSizes:  [6]HalfPoints{32, 28, 26, 24, 22, 22},
		HeadingColor:  "1F3864",
		CodeFont:      "Consolas",
		CodeSize:      19,
		CodeFill:      "F2F2F2",
		QuoteStyle:    "Quote",
		HeaderFill:    "1F4E79",
		HeaderColor:   "FFFFFF",
		HeaderSize:    22,
		TableBodySize: 20,
	}
}

// HeadingSize returns the size for a heading level, clamped to 1..6.
func (p StylePolicy) HeadingSize(level int) HalfPoints {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return p.HeadingSizes[level-1]
}

// Merge returns p with every non-zero field of o applied on top.
func (p StylePolicy) Merge(o StylePolicy) StylePolicy {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	size := func(dst *HalfPoints, v HalfPoints) {
		if v != 0 {
			*dst = v
		}
	}

	str(&p.BodyFont, o.BodyFont)
	size(&p.BodySize, o.BodySize)
	for i := range p.HeadingSizes {
		size(&p.HeadingSizes[i], o.HeadingSizes[i])
	}
	str(&p.HeadingColor, o.HeadingColor)
	str(&p.CodeFont, o.CodeFont)
	size(&p.CodeSize, o.CodeSize)
	str(&p.CodeFill, o.CodeFill)
	str(&p.QuoteStyle, o.QuoteStyle)
	str(&p.HeaderFill, o.HeaderFill)
	str(&p.HeaderColor, o.HeaderColor)
	size(&p.HeaderSize, o.HeaderSize)
	size(&p.TableBodySize, o.TableBodySize)
	return p
}

// Validate checks fonts are named, sizes are in range and colors are hex.
func (p StylePolicy) Validate() error {
	if p.BodyFont == "" {
		return fmt.Errorf("%w: bodyFont is empty", ErrInvalidPolicy)
	}
	if p.CodeFont == "" {
		return fmt.Errorf("%w: codeFont is empty", ErrInvalidPolicy)
	}

	sizes := map[string]HalfPoints{
		"bodySize":      p.BodySize,
		"codeSize":      p.CodeSize,
		"headerSize":    p.HeaderSize,
		"tableBodySize": p.TableBodySize,
	}
	for i, s := range p.HeadingSizes {
		sizes[fmt.Sprintf("headingSizes[%d]", i)] = s
	}
	for name, s := range sizes {
		if s < MinSize || s > MaxSize {
			return fmt.Errorf("%w: %s=%d (must be %d-%d half-points)", ErrInvalidPolicy, name, s, MinSize, MaxSize)
		}
	}

	colors := map[string]string{
		"headingColor": p.HeadingColor,
		"codeFill":     p.CodeFill,
		"headerFill":   p.HeaderFill,
		"headerColor":  p.HeaderColor,
	}
	for name, c := range colors {
		if c != "" && !hexColorPattern.MatchString(c) {
			return fmt.Errorf("%w: %s=%q (must be RRGGBB)", ErrInvalidPolicy, name, c)
		}
	}
	return nil
}

// BodyStyle is the formatting of plain paragraphs and list items.
func (p StylePolicy) BodyStyle() TextStyle {
	return TextStyle{Font: p.BodyFont, Size: p.BodySize}
}
