package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==(\S(?:.*?\S)?)==`)

	fencePattern   = regexp.MustCompile("^ {0,3}(```|~~~)")
	headingPattern = regexp.MustCompile(`^ {0,3}#{1,6}(\s|$)`)
	listPattern    = regexp.MustCompile(`^ {0,3}([-*+]|\d{1,9}[.)])\s`)
	quotePattern   = regexp.MustCompile(`^ {0,3}>`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark conversion.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = separateBlocks(content)
	content = stripHighlights(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// stripHighlights reduces ==text== to text outside code. Documents carry
// no highlight markup of their own.
func stripHighlights(content string) string {
	return eachOutsideFences(content, func(line string) string {
		if strings.Contains(line, "`") {
			return line
		}
		return highlightPattern.ReplaceAllString(line, "$1")
	})
}

type blockKind int

const (
	blockOther blockKind = iota
	blockBlank
	blockHeading
	blockList
	blockQuote
	blockIndented
)

func classify(line string) blockKind {
	switch {
	case strings.TrimSpace(line) == "":
		return blockBlank
	case headingPattern.MatchString(line):
		return blockHeading
	case listPattern.MatchString(line):
		return blockList
	case quotePattern.MatchString(line):
		return blockQuote
	case strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t"):
		return blockIndented
	}
	return blockOther
}

// separateBlocks inserts a blank line before headings, lists and quotes
// that directly follow a line of another kind. Authors often omit it and
// CommonMark then folds the line into the preceding paragraph.
func separateBlocks(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	prev := blockBlank
	inFence := false

	for _, line := range lines {
		if fencePattern.MatchString(line) {
			if !inFence && prev != blockBlank {
				out = append(out, "")
			}
			inFence = !inFence
			out = append(out, line)
			prev = blockOther
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}

		kind := classify(line)
		if (prev == blockList || prev == blockQuote) && kind != blockBlank &&
			(kind == blockIndented || strings.HasPrefix(line, " ")) {
			// Continuation of the item or quote above.
			kind = prev
		}
		switch kind {
		case blockHeading:
			if prev != blockBlank {
				out = append(out, "")
			}
		case blockList, blockQuote:
			if prev != blockBlank && prev != kind && prev != blockIndented {
				out = append(out, "")
			}
		}
		out = append(out, line)

		// Lines after a heading start a new block.
		if kind == blockHeading {
			out = append(out, "")
			kind = blockBlank
		}
		prev = kind
	}
	return strings.Join(out, "\n")
}

// eachOutsideFences applies fn to every line outside fenced code blocks.
func eachOutsideFences(content string, fn func(string) string) string {
	lines := strings.Split(content, "\n")
	inFence := false
	for i, line := range lines {
		if fencePattern.MatchString(line) {
			inFence = !inFence
			continue
		}
		if !inFence {
			lines[i] = fn(line)
		}
	}
	return strings.Join(lines, "\n")
}
