// Package md2docx composes Word documents from Markdown.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := md2docx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown: []byte("# Hello\n\nWorld"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.docx", result.DOCX, 0o644)
//
// For one-off calls, ConvertMarkdownToDocument does the same with a shared
// converter and the bundled templates.
//
// # Composition Pipeline
//
// The conversion process follows these stages:
//
//  1. Input decoding (UTF-8, then a best-effort legacy decode)
//  2. Markdown to HTML via Goldmark (GFM tables, strikethrough, code fences)
//  3. Block mapping into styled paragraphs, tables and runs
//  4. Rendering into the theme package, keeping its styles, headers and footers
//  5. Section buffering so body pages get their own header and footer parts
//  6. TOC field insertion, refreshed by Word when the document opens
//  7. Composition: cover, body and end fragments merged into one package
//
// Problems the pipeline can work around are not errors. A theme that does
// not open falls back to the bundled one, a broken cover or end fragment is
// left out, and undecodable input is decoded lossily. Each case is recorded
// in ConvertResult.Diagnostics:
//
//	if result.Diagnostics.HasWarning(md2docx.ErrThemeLoad) {
//	    log.Println("custom theme ignored")
//	}
//
// Anything else fails with ErrConversionFailed. Validation errors
// (ErrInvalidTOCDepth, ErrInvalidDateFormat, ErrInvalidStylePolicy) are
// returned as is.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2docx.NewConverter(
//	    md2docx.WithLogger(logger),
//	    md2docx.WithTemplate("corporate"),
//	    md2docx.WithAssetPath("/path/to/custom/assets"),
//	    md2docx.WithStylePolicy(policy),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown: content,
//	    Metadata: &md2docx.Metadata{Title: "Report", Date: "auto:long"},
//	    TOC:      &md2docx.TOC{Title: "Contents", MinDepth: 2, MaxDepth: 3},
//	})
//
// Metadata fills the {{.Title}} style placeholders of the cover and end
// fragments and the core document properties. Dates accept "auto" and
// "auto:FORMAT" to stamp the conversion date.
//
// # Parallel Processing
//
// A Converter is safe for concurrent use. ConverterPool bounds how many
// conversions run at once:
//
//	pool := md2docx.NewConverterPool(md2docx.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Custom Assets
//
// Override the bundled template set using AssetLoader:
//
//	loader, err := md2docx.NewAssetLoader("/path/to/assets")
//	conv, err := md2docx.NewConverter(md2docx.WithAssetLoader(loader))
//
// Asset directory structure. Each fragment is either a .docx file or an
// unpacked package directory:
//
//	assets/
//	└── templates/
//	    └── corporate/
//	        ├── theme.docx
//	        ├── cover.docx
//	        └── end/
//	            ├── [Content_Types].xml
//	            └── word/document.xml
//
// # Extraction
//
// ExtractMarkdown goes the other way, turning an uploaded .docx or .pdf into
// Markdown:
//
//	md, err := md2docx.ExtractMarkdown(ctx, "brief.pdf", data)
package md2docx
