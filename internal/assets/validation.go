package assets

import (
	"fmt"
	"strings"

	"github.com/h2non/filetype"
)

// MaxAssetSize bounds a single package read from disk.
const MaxAssetSize = 32 << 20

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidatePackage checks the magic bytes of a package. Word documents and
// plain zip containers pass; the parts inside are checked when the package
// is opened.
func ValidatePackage(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty", ErrNotPackage)
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotPackage, err)
	}
	switch kind.Extension {
	case "docx", "zip":
		return nil
	case "":
		return fmt.Errorf("%w: unknown format", ErrNotPackage)
	}
	return fmt.Errorf("%w: detected %s", ErrNotPackage, kind.Extension)
}
