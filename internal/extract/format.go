package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/h2non/filetype"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// Format identifies an input format by its extension, dot included.
type Format string

// Supported formats.
const (
	FormatDOCX Format = ".docx"
	FormatPDF  Format = ".pdf"
)

var formats = map[Format]func([]byte) bool{
	FormatDOCX: func(data []byte) bool { return filetype.Is(data, "docx") || filetype.Is(data, "zip") },
	FormatPDF:  func(data []byte) bool { return filetype.Is(data, "pdf") },
}

// Allowed returns the supported extensions, sorted.
func Allowed() []string {
	out := make([]string, 0, len(formats))
	for f := range formats {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// FormatFromName picks the format from the extension of filename.
func FormatFromName(filename string) (Format, error) {
	ext := Format(fileutil.Extension(filename))
	if _, ok := formats[ext]; !ok {
		return "", fmt.Errorf("%w: %q, allowed: %s", ErrUnsupportedFormat, ext, strings.Join(Allowed(), ", "))
	}
	return ext, nil
}

// DetectFormat picks the format from the file name and confirms it with the
// leading bytes of data.
func DetectFormat(filename string, data []byte) (Format, error) {
	f, err := FormatFromName(filename)
	if err != nil {
		return "", err
	}
	if !formats[f](data) {
		kind, _ := filetype.Match(data)
		detected := kind.Extension
		if detected == "" {
			detected = "unknown"
		}
		return "", fmt.Errorf("%w: %s content detected as %s", ErrUnsupportedFormat, f, detected)
	}
	return f, nil
}
