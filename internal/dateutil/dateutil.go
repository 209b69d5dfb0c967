// Package dateutil resolves the cover date setting.
//
// A date value is either literal text, kept as is, or "auto" with an
// optional format: "auto", "auto:DD/MM/YYYY", "auto:long". Formats use the
// tokens YYYY, YY, MMMM, MMM, MM, M, DD, D and Do; text in brackets is
// literal.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an unusable "auto" format.
var ErrInvalidDateFormat = errors.New("invalid date format")

const (
	// MaxFormatLength bounds a format string.
	MaxFormatLength = 50

	// DefaultFormat is the format of a bare "auto".
	DefaultFormat = "YYYY-MM-DD"

	autoKeyword = "auto"
)

// Presets are named formats accepted after "auto:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"full":     "MMMM Do, YYYY",
}

type token struct {
	name   string
	render func(time.Time) string
}

// tokens are tried in order, so longer names come first.
var tokens = []token{
	{"YYYY", func(t time.Time) string { return t.Format("2006") }},
	{"MMMM", func(t time.Time) string { return t.Format("January") }},
	{"MMM", func(t time.Time) string { return t.Format("Jan") }},
	{"YY", func(t time.Time) string { return t.Format("06") }},
	{"MM", func(t time.Time) string { return t.Format("01") }},
	{"Do", func(t time.Time) string { return ordinal(t.Day()) }},
	{"DD", func(t time.Time) string { return t.Format("02") }},
	{"M", func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{"D", func(t time.Time) string { return strconv.Itoa(t.Day()) }},
}

// segment is either literal text or a token.
type segment struct {
	literal string
	tok     *token
}

// Format is a compiled date format.
type Format struct {
	source   string
	segments []segment
}

// ParseFormat compiles a format string.
func ParseFormat(format string) (*Format, error) {
	if strings.TrimSpace(format) == "" {
		return nil, fmt.Errorf("%w: empty format", ErrInvalidDateFormat)
	}
	if len(format) > MaxFormatLength {
		return nil, fmt.Errorf("%w: longer than %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	f := &Format{source: format}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			f.segments = append(f.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for rest := format; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed bracket at %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			lit.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		if tok := matchToken(rest); tok != nil {
			flush()
			f.segments = append(f.segments, segment{tok: tok})
			rest = rest[len(tok.name):]
			continue
		}
		lit.WriteByte(rest[0])
		rest = rest[1:]
	}
	flush()
	return f, nil
}

func matchToken(s string) *token {
	for i := range tokens {
		if strings.HasPrefix(s, tokens[i].name) {
			return &tokens[i]
		}
	}
	return nil
}

// Render formats t.
func (f *Format) Render(t time.Time) string {
	var b strings.Builder
	for _, s := range f.segments {
		if s.tok != nil {
			b.WriteString(s.tok.render(t))
		} else {
			b.WriteString(s.literal)
		}
	}
	return b.String()
}

// String returns the source format.
func (f *Format) String() string { return f.source }

// IsAuto reports whether value asks for the current date.
func IsAuto(value string) bool {
	lower := strings.ToLower(value)
	return lower == autoKeyword || strings.HasPrefix(lower, autoKeyword+":")
}

// Validate checks value without resolving it.
func Validate(value string) error {
	_, err := Resolve(value, time.Time{})
	return err
}

// Resolve returns value unchanged unless it is an "auto" value, in which
// case now is rendered with the requested format or preset.
func Resolve(value string, now time.Time) (string, error) {
	if !IsAuto(value) {
		if strings.HasPrefix(strings.ToLower(value), autoKeyword) {
			return "", fmt.Errorf("%w: %q, use %q or %q", ErrInvalidDateFormat, value, "auto", "auto:FORMAT")
		}
		return value, nil
	}

	format := DefaultFormat
	if len(value) > len(autoKeyword) {
		format = value[len(autoKeyword)+1:]
		if preset, ok := Presets[strings.ToLower(format)]; ok {
			format = preset
		}
	}
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	return f.Render(now), nil
}

// ordinal renders 1 as 1st, 2 as 2nd, 11 as 11th.
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
