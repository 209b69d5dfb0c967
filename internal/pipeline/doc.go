// Package pipeline turns Markdown text into document blocks.
//
// The stages run in order:
//   - input decoding (UTF-8, with a permissive fallback for legacy encodings)
//   - Markdown preprocessing (line endings, block separation, highlight markers)
//   - Markdown to HTML conversion via Goldmark
//   - HTML fragment parsing into top-level nodes
//   - block mapping with the style policy and table rules
//
// Writing blocks into a package is handled by internal/docx, and assembling
// the final document by internal/compose. Every stage here is pure: no I/O,
// no shared mutable state.
package pipeline
