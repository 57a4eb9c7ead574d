// Package assets provides the base stylesheet and document template.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from the go:embed filesystem
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. A custom directory
// may override only some assets; anything it lacks comes from the embedded
// set.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # base stylesheet (default.css)
//	└── templates/
//	    └── {name}.html          # document template (document.html)
//
// The document template is an html/template receiving every document
// parameter by name (title, stylesheet, style, linenos, markdown and any
// parameter a directive defines) plus body and css.
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
