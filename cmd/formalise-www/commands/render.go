package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/goliatone/go-formalise/pkg/gallery"
	"github.com/goliatone/go-formalise/pkg/orchestrator"
	"github.com/goliatone/go-formalise/pkg/render"
	"github.com/goliatone/go-formalise/pkg/renderers/tui"
	"github.com/goliatone/go-formalise/pkg/renderers/vanilla"
	"github.com/goliatone/go-formalise/pkg/site"
)

type RenderCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	example  string
	page     int
	renderer string
	fragment bool
	variant  string
	format   string
}

// renderFormats maps --format values to the content type they select and
// the serialization the terminal renderer uses for it.
var renderFormats = map[string]struct {
	contentType string
	tui         tui.OutputFormat
}{
	"html": {contentType: "text/html", tui: tui.OutputFormatPrettyText},
	"json": {contentType: "application/json", tui: tui.OutputFormatJSON},
	"form": {contentType: "application/x-www-form-urlencoded", tui: tui.OutputFormatFormURLEncoded},
	"text": {contentType: "text/plain", tui: tui.OutputFormatPrettyText},
}

// NewRenderCommand returns the render command.
func NewRenderCommand(rootCmd *RootCommand, app *kingpin.Application) *RenderCommand {
	c := &RenderCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("render", "Render one page of an example form to stdout.")
	c.Cmd.Arg("example", "Example id.").Required().EnumVar(&c.example, gallery.IDs()...)
	c.Cmd.Flag("page", "0-based page to render.").Default("0").IntVar(&c.page)
	c.Cmd.Flag("renderer", "Renderer to use.").Default("vanilla").EnumVar(&c.renderer, "vanilla", "tui")
	c.Cmd.Flag("fragment", "Render only the form without the site shell.").BoolVar(&c.fragment)
	c.Cmd.Flag("variant", "Theme variant, defaults to the configured one.").StringVar(&c.variant)
	c.Cmd.Flag("format", "Output format (html, json, form, text). Picks the renderer producing it and overrides --renderer.").EnumVar(&c.format, "html", "json", "form", "text")

	return c
}

func (c RenderCommand) Name() string { return c.Cmd.FullCommand() }

func (c RenderCommand) Run(ctx context.Context) error {
	cfg, err := site.Load(c.rootCmd.ConfigPath)
	if err != nil {
		return err
	}
	themes, err := site.NewThemes(cfg.Theme.Variant, cfg.Theme.Manifest())
	if err != nil {
		return err
	}

	registry := render.NewRegistry()
	htmlRenderer, err := vanilla.New()
	if err != nil {
		return fmt.Errorf("could not create html renderer: %w", err)
	}
	registry.MustRegister(htmlRenderer)
	format, byFormat := renderFormats[c.format]
	tuiFormat := tui.OutputFormatPrettyText
	if byFormat {
		tuiFormat = format.tui
	}
	tuiRenderer, err := tui.New(tui.WithOutputFormat(tuiFormat))
	if err != nil {
		return fmt.Errorf("could not create terminal renderer: %w", err)
	}
	registry.MustRegister(tuiRenderer)

	rendererName := c.renderer
	if byFormat {
		picked, err := registry.ByContentType(format.contentType)
		if err != nil {
			return err
		}
		rendererName = picked.Name()
	}

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithThemeSelector(themes, cfg.Theme.Name, c.variant),
	}
	if !c.fragment {
		options = append(options, orchestrator.WithSite(cfg))
	}

	out, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		FormID:        c.example,
		Page:          c.page,
		Renderer:      rendererName,
		RenderOptions: render.RenderOptions{Action: "/examples/" + c.example},
	})
	if err != nil {
		return err
	}

	_, err = c.rootCmd.Stdout.Write(out)
	return err
}
