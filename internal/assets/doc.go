// Package assets provides the CSS style and HTML document template used to
// render papers.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// A single template file configured by path (template.path) is read with
// LoadTemplateFile; callers fall back to the embedded template when it is
// unusable.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # e.g. academic.css
//	└── templates/
//	    └── {name}.html          # e.g. document.html
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
