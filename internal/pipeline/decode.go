package pipeline

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInputDecoding indicates the input was not valid UTF-8 and had to be
// decoded permissively.
var ErrInputDecoding = errors.New("input is not valid UTF-8")

const byteOrderMark = "\uFEFF"

// Decoded is Markdown input turned into text.
type Decoded struct {
	Text     string
	Encoding string
	// Recovered is set when the input was not UTF-8.
	Recovered bool
	// Lossy is set when invalid sequences were replaced with U+FFFD.
	Lossy bool
}

// Err returns ErrInputDecoding when decoding had to recover, nil otherwise.
func (d Decoded) Err() error {
	if d.Recovered {
		return ErrInputDecoding
	}
	return nil
}

// DecodeMarkdown turns raw bytes into text. UTF-8 passes through with its
// byte order mark removed. Anything else is decoded with the sniffed legacy
// encoding and, failing that, has invalid sequences replaced. It never fails.
func DecodeMarkdown(data []byte) Decoded {
	if utf8.Valid(data) {
		return Decoded{Text: strings.TrimPrefix(string(data), byteOrderMark), Encoding: "utf-8"}
	}

	enc, name, _ := charset.DetermineEncoding(data, "text/plain")
	if out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data); err == nil && utf8.Valid(out) {
		return Decoded{
			Text:      strings.TrimPrefix(string(out), byteOrderMark),
			Encoding:  name,
			Recovered: true,
		}
	}

	return Decoded{
		Text:      strings.ToValidUTF8(string(data), "\uFFFD"),
		Encoding:  "utf-8",
		Recovered: true,
		Lossy:     true,
	}
}
