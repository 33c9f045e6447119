package tui

import "github.com/AlecAivazis/survey/v2/terminal"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded
	// payloads using the dotted field paths of the HTML renderer.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints the driver applies when printing
// messages. Keep minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
	// Done, Active and Pending are the glyphs of the progress line.
	Done    string
	Active  string
	Pending string
}

func defaultTheme() Theme {
	return Theme{
		ErrorPrefix: "! ",
		Done:        "●",
		Active:      "◉",
		Pending:     "○",
	}
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithStdio points the survey driver at the given streams.
func WithStdio(stdio terminal.Stdio) Option {
	return func(r *Renderer) {
		r.driver = NewSurveyDriver(stdio)
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme overrides message prefixes and progress glyphs. Empty glyphs keep
// their defaults.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		def := defaultTheme()
		if theme.Done == "" {
			theme.Done = def.Done
		}
		if theme.Active == "" {
			theme.Active = def.Active
		}
		if theme.Pending == "" {
			theme.Pending = def.Pending
		}
		r.theme = theme
	}
}
