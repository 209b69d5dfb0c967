package extract

import (
	"regexp"
	"strings"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Normalize cleans extracted Markdown.
func Normalize(md string) string {
	md = strings.ReplaceAll(md, "\r\n", "\n")
	md = blankRuns.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md)
}

// joinPages trims each page, drops empty ones and separates the rest by a
// blank line.
func joinPages(pages []string) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return Normalize(strings.Join(parts, "\n\n"))
}
