package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRun = regexp.MustCompile(`[ \t\n\r\f]+`)

// ParseBlocks parses an HTML body fragment into its top-level nodes.
func ParseBlocks(fragment string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing fragment: %v", ErrHTMLConversion, err)
	}
	return nodes, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// inlineText returns the visible text of n with HTML whitespace collapsed.
// <br> becomes "\n". Nested lists are left out when skipLists is set.
func inlineText(n *html.Node, skipLists bool) string {
	var b strings.Builder
	collectInline(n, &b, skipLists)
	return tidyLines(b.String())
}

func collectInline(n *html.Node, b *strings.Builder, skipLists bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(whitespaceRun.ReplaceAllString(c.Data, " "))
		case html.ElementNode:
			switch c.DataAtom {
			case atom.Br:
				b.WriteByte('\n')
			case atom.Img:
				b.WriteString(attr(c, "alt"))
			case atom.Input:
				if attr(c, "type") == "checkbox" {
					if hasAttr(c, "checked") {
						b.WriteString("[x] ")
					} else {
						b.WriteString("[ ] ")
					}
				}
			case atom.Ul, atom.Ol:
				if !skipLists {
					b.WriteByte('\n')
					collectInline(c, b, skipLists)
				}
			case atom.P, atom.Li, atom.Div:
				// Block children of list items and cells end a line.
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				collectInline(c, b, skipLists)
			default:
				collectInline(c, b, skipLists)
			}
		}
	}
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// tidyLines collapses spaces inside each line, trims the lines and drops
// empty ones at both ends.
func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

// rawText returns the text of n exactly as written, for preformatted code.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				b.WriteString(c.Data)
			case c.Type == html.ElementNode && c.DataAtom == atom.Br:
				b.WriteByte('\n')
			case c.Type == html.ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimRight(b.String(), "\n")
}
