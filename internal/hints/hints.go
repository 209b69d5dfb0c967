// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2docx/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2docx") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateSetNotFound returns hints for template set not found errors.
func ForTemplateSetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; custom sets live in {assets}/templates/{name}/")
}

// ForThemePackage returns hints for theme, cover or end files that are not
// Word documents.
func ForThemePackage() string {
	return format("save the file as Word Document (.docx), not .doc or .dotx")
}

// ForUnsupportedFormat returns hints for extraction of unsupported files.
func ForUnsupportedFormat(allowed []string) string {
	if len(allowed) == 0 {
		return ""
	}
	return format("supported formats: " + strings.Join(allowed, ", "))
}

// ForFileTooLarge returns hints for extraction inputs over the size limit.
func ForFileTooLarge(maxBytes int) string {
	return format(fmt.Sprintf("limit is %s; raise it with --max-bytes or extract.maxBytes", humanBytes(maxBytes)))
}

// ForTOCUpdate reminds that the table of contents is computed by the viewer.
func ForTOCUpdate() string {
	return format("open the document in a word processor and accept the field update to fill the table of contents")
}

func humanBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
