package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/gallery"
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/render"
	"github.com/goliatone/go-formalise/pkg/renderers/vanilla"
	"github.com/goliatone/go-formalise/pkg/site"
)

const defaultRendererName = "vanilla"

// Provider resolves form definitions by id.
type Provider interface {
	Lookup(id string) (model.Form, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(id string) (model.Form, error)

func (fn ProviderFunc) Lookup(id string) (model.Form, error) { return fn(id) }

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithProvider replaces the gallery as the source of form definitions.
func WithProvider(provider Provider) Option {
	return func(o *Orchestrator) {
		o.provider = provider
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves a theme for every request that does not carry
// one in its render options.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithSite wraps rendered pages in the site shell described by cfg.
func WithSite(cfg site.Config) Option {
	return func(o *Orchestrator) {
		o.site = &cfg
	}
}

// WithClock sets the time source used for the site footer.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// Orchestrator renders a single page of a form. Defaults are the gallery
// provider and the vanilla renderer.
type Orchestrator struct {
	provider        Provider
	registry        *render.Registry
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	themeName       string
	themeVariant    string
	site            *site.Config
	now             func() time.Time
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes which page of which form to render.
type Request struct {
	// FormID selects the form through the provider. Optional when Form is set.
	FormID string
	// Form bypasses the provider.
	Form *model.Form
	// Page is the 0-based page to render.
	Page int
	// Values are overlaid on the form's initial values.
	Values model.Values
	// Renderer names the renderer to use, falling back to the default.
	Renderer string

	RenderOptions render.RenderOptions
}

// Generate resolves the form, positions a controller on the requested page
// and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	def, err := o.resolveForm(req)
	if err != nil {
		return nil, err
	}

	ctrl, err := form.New(def)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	if err := ctrl.Restore(req.Page, req.Values); err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil && o.themeSelector != nil {
		selection, err := o.themeSelector.Select(o.themeName, o.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: select theme: %w", err)
		}
		options.Theme = site.RendererConfig(selection)
	}
	if options.Chrome == nil && o.site != nil {
		options.Chrome = o.site.Chrome(def.Title, "examples/"+def.ID, nil, o.now())
	}

	output, err := renderer.Render(ctx, def, ctrl.Context(), options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveForm(req Request) (model.Form, error) {
	if req.Form != nil {
		return *req.Form, nil
	}
	if req.FormID == "" {
		return model.Form{}, errors.New("orchestrator: form id is required")
	}
	if o.provider == nil {
		return model.Form{}, errors.New("orchestrator: form provider is nil")
	}
	def, err := o.provider.Lookup(req.FormID)
	if err != nil {
		return model.Form{}, fmt.Errorf("orchestrator: %w", err)
	}
	return def, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.provider == nil {
		o.provider = ProviderFunc(gallery.Lookup)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.now == nil {
		o.now = time.Now
	}
}
