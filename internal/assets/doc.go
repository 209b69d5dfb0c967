// Package assets provides the template sets a document is built from.
//
// A template set holds up to three WordprocessingML packages:
//
//	theme  - styles, page layout, header and footer applied to the Body
//	cover  - first page, with {{.Title}}-style placeholders
//	end    - closing page, appended after the Body
//
// Each package is optional.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads the bundled "default" set from go:embed
//	    ├── FilesystemLoader  - loads sets from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// Bundled packages are stored unpacked, as part trees, and zipped into fresh
// bytes on every load, so callers never share a buffer.
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    └── {name}/
//	        ├── theme.docx      # or theme/ holding the unpacked parts
//	        ├── cover.docx      # or cover/
//	        └── end.docx        # or end/
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
