// Package assets provides CSS styles and the HTML document template used to
// render conversation logs.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in styles (default, dark) and the
// document template compiled into the binary.
//
// FilesystemLoader lets users override assets from a directory, with path
// traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when an asset is
// not found there, so a single style can be overridden while the template
// keeps its default.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # CSS styles (e.g., dark.css)
//	└── templates/
//	    └── {name}.html          # Document templates (e.g., document.html)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
