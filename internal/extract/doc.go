// Package extract turns Word and PDF files back into Markdown.
//
// A Service validates the upload (extension, size, magic bytes), then tries
// each registered Extractor that accepts the format until one succeeds:
//
//	.docx  - TabulaExtractor
//	.pdf   - TabulaExtractor, then PDFTextExtractor (page text)
//
// The result is normalized: Windows line endings become "\n", runs of three or
// more newlines collapse to a blank line, and surrounding space is trimmed.
package extract
