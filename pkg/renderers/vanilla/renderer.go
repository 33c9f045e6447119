package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/render"
	rendertemplate "github.com/goliatone/go-formalise/pkg/render/template"
	gotemplate "github.com/goliatone/go-formalise/pkg/render/template/gotemplate"
)

const (
	pageTemplate     = "templates/page.tmpl"
	documentTemplate = "templates/document.tmpl"
	indexTemplate    = "templates/index.tmpl"

	// StylesheetAsset is the theme asset key resolved through
	// theme.RendererConfig.AssetURL. When the theme does not provide it the
	// renderer falls back to the bundled stylesheet URL.
	StylesheetAsset = "formalise.stylesheet"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheetURL    string
	classes          Classes
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheetURL sets where documents link the bundled stylesheet from.
func WithStylesheetURL(url string) Option {
	return func(cfg *config) {
		cfg.stylesheetURL = strings.TrimSpace(url)
	}
}

// WithClasses appends custom classes to the semantic defaults.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// Renderer renders form pages as plain HTML forms that post back to the
// server. It needs no client-side scripting.
type Renderer struct {
	templates     rendertemplate.TemplateRenderer
	stylesheetURL string
	classes       Classes
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:    TemplatesFS(),
		stylesheetURL: "/assets/" + StylesheetName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:     renderer,
		stylesheetURL: cfg.stylesheetURL,
		classes:       cfg.classes,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the HTML of one page. With options.Chrome set the page is
// wrapped in a full document carrying the site shell.
func (r *Renderer) Render(_ context.Context, def model.Form, page form.PageContext, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if page.Page < 0 || page.Page >= len(def.Pages) {
		return nil, fmt.Errorf("vanilla renderer: page %d of %q: %w", page.Page, def.ID, form.ErrPageOutOfRange)
	}
	if page.Total == 0 {
		page.Total = len(def.Pages)
	}

	data := map[string]any{
		"page": buildPageView(def, page, options, r.classes),
	}

	name := pageTemplate
	if options.Chrome != nil {
		name = documentTemplate
		data["chrome"] = options.Chrome
		data["theme"] = r.themeView(options)
	}

	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// IndexEntry is one example listed on the site index.
type IndexEntry struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// RenderIndex renders the site index listing entries inside the site shell.
func (r *Renderer) RenderIndex(_ context.Context, heading string, entries []IndexEntry, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	chrome := options.Chrome
	if chrome == nil {
		chrome = &render.Chrome{Title: heading}
	}
	data := map[string]any{
		"heading": heading,
		"entries": entries,
		"chrome":  chrome,
		"theme":   r.themeView(options),
	}
	result, err := r.templates.RenderTemplate(indexTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render index: %w", err)
	}
	return []byte(result), nil
}

type themeView struct {
	Name       string `json:"name,omitempty"`
	Variant    string `json:"variant,omitempty"`
	Stylesheet string `json:"stylesheet"`
	Style      string `json:"style,omitempty"`
}

func (r *Renderer) themeView(options render.RenderOptions) themeView {
	view := themeView{Stylesheet: r.stylesheetURL}
	cfg := options.Theme
	if cfg == nil {
		return view
	}
	view.Name = cfg.Theme
	view.Variant = cfg.Variant
	if cfg.AssetURL != nil {
		if url := cfg.AssetURL(StylesheetAsset); url != "" {
			view.Stylesheet = url
		}
	}
	view.Style = cssVarsStyle(cfg.CSSVars)
	return view
}

// cssVarsStyle renders custom properties as a :root rule body in stable
// order. Values containing characters that could end the rule are skipped.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		if strings.HasPrefix(name, "--") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		value := strings.TrimSpace(vars[name])
		if value == "" || strings.ContainsAny(value, ";{}<>") {
			continue
		}
		fmt.Fprintf(&b, "%s: %s; ", name, value)
	}
	return strings.TrimSpace(b.String())
}
