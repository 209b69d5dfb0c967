package docx

import (
	"archive/zip"
	"bytes"
	"fmt"

	fixzip "github.com/hidez8891/zip"
)

// flagDataDescriptor is general purpose bit 3: sizes and CRC follow the data.
const flagDataDescriptor = 0x8

// StripDataDescriptors rewrites a zip so that no entry uses a trailing data
// descriptor. Some consumers of OOXML packages refuse streamed entries.
func StripDataDescriptors(data []byte) ([]byte, error) {
	r, err := fixzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPackage, err)
	}

	var buf bytes.Buffer
	w := fixzip.NewWriter(&buf)
	for _, file := range r.File {
		file.Flags &^= fixzip.FlagDataDescriptor
		if err := w.CopyFile(file); err != nil {
			return nil, fmt.Errorf("copying %s: %w", file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// HasDataDescriptors reports whether any entry of the zip uses a data descriptor.
func HasDataDescriptors(data []byte) (bool, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrNotPackage, err)
	}
	for _, f := range r.File {
		if f.Flags&flagDataDescriptor != 0 {
			return true, nil
		}
	}
	return false, nil
}
