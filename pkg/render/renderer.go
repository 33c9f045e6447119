package render

import (
	"context"

	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/model"
)

// Renderer turns one page of a form into a byte representation (HTML, a
// terminal session transcript, etc.). The page context carries the page
// index, values and messages; renderers never reach into a controller.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, def model.Form, page form.PageContext, options RenderOptions) ([]byte, error)
}
