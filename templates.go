package formalise

import (
	"io/fs"

	"github.com/goliatone/go-formalise/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet served next to rendered pages.
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
