//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alnah/go-md2docx/internal/model"
)

// BenchmarkMarkdownToBlocks measures the whole text pipeline, from
// preprocessing to mapped blocks.
func BenchmarkMarkdownToBlocks(b *testing.B) {
	ctx := context.Background()
	pre := &CommonMarkPreprocessor{}
	converter := NewGoldmarkConverter()
	mapper := NewMapper(model.DefaultStylePolicy())

	for _, sections := range []int{1, 10, 50, 200} {
		content := generateMixedMarkdown(sections)
		b.Run(fmt.Sprintf("sections_%d", sections), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				fragment, err := converter.ToHTML(ctx, pre.PreprocessMarkdown(ctx, content))
				if err != nil {
					b.Fatal(err)
				}
				nodes, err := ParseBlocks(fragment)
				if err != nil {
					b.Fatal(err)
				}
				_ = mapper.Map(nodes)
			}
		})
	}
}

// BenchmarkMapper isolates block mapping from Markdown conversion.
func BenchmarkMapper(b *testing.B) {
	fragment, err := NewGoldmarkConverter().ToHTML(context.Background(), generateMixedMarkdown(50))
	if err != nil {
		b.Fatal(err)
	}
	nodes, err := ParseBlocks(fragment)
	if err != nil {
		b.Fatal(err)
	}
	mapper := NewMapper(model.DefaultStylePolicy())

	b.ReportAllocs()
	for b.Loop() {
		_ = mapper.Map(nodes)
	}
}

func generateMixedMarkdown(sections int) string {
	var sb strings.Builder
	for i := range sections {
		fmt.Fprintf(&sb, "## Section %d\n\n", i+1)
		sb.WriteString("Some introductory text with **bold** and *italic* words.\n\n")
		sb.WriteString("- first point\n- second point\n  - nested point\n\n")
		sb.WriteString("1. step one\n2. step two\n\n")
		if i%3 == 0 {
			sb.WriteString("```go\nfunc main() {\n    fmt.Println(\"Hello\")\n}\n```\n\n")
		}
		if i%4 == 0 {
			sb.WriteString("| Name | Value |\n|------|-------|\n| a | 1 |\n| b | 2 |\n\n")
		}
		sb.WriteString("> A quoted remark.\n\n")
	}
	return sb.String()
}
