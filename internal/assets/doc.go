// Package assets provides the status notice template and stylesheet
// injected into rendered technote pages.
//
// Built-in assets are embedded in the binary. A project may override any
// of them from a directory laid out as:
//
//	{dir}/
//	├── styles/
//	│   └── status.css
//	└── templates/
//	    └── status.html
//
// Resolver reads the override directory first and falls back to the
// built-in asset when the override does not exist. Override files are read
// through an os.Root, so names and symlinks cannot reach outside {dir}.
package assets
