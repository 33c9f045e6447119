package formalise

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/orchestrator"
	"github.com/goliatone/go-formalise/pkg/render"
)

// RenderOptions describes per-request data such as the post-back action,
// hidden inputs, the theme and the site shell.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request for callers that need values or an
// explicit renderer.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders one page of a gallery example with its initial values.
// It is the simplest entry point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, formID string, page int, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		FormID: formID,
		Page:   page,
	})
}

// GenerateHTMLFromForm renders a caller-supplied definition, bypassing the
// example gallery.
func GenerateHTMLFromForm(ctx context.Context, def model.Form, page int, values model.Values, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Form:   &def,
		Page:   page,
		Values: values,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, name, variant)
}
