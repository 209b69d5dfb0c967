// Package yamlutil decodes and encodes the configuration file.
//
// Decoding errors carry the offending source lines so the command line can
// point at the exact place in the file.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrInvalidYAML    = errors.New("yamlutil: invalid document")
)

// Error is a decoding failure.
type Error struct {
	err error
}

func (e *Error) Error() string { return "yamlutil: " + e.err.Error() }

// Is matches ErrInvalidYAML.
func (e *Error) Is(target error) bool { return target == ErrInvalidYAML }

func (e *Error) Unwrap() error { return e.err }

// Source renders the error with the surrounding lines of the input.
func (e *Error) Source() string {
	return yaml.FormatError(e.err, false, true)
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict decodes data into v and rejects unknown fields. Fields
// already set in v keep their value when the input omits them.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return &Error{err: err}
	}
	return nil
}

// Marshal encodes v with two-space indentation and block sequences.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
