package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data renderers use to customise their
// output without touching the form definition.
type RenderOptions struct {
	// Action is the URL the rendered page posts back to.
	Action string
	// Hidden carries extra hidden inputs such as CSRF tokens.
	Hidden map[string]string
	// Theme is the resolved go-theme configuration. Renderers expose its CSS
	// variables and asset URLs to templates.
	Theme *theme.RendererConfig
	// Chrome wraps the form in the documentation site shell. When nil only
	// the form fragment is rendered.
	Chrome *Chrome
}

// Link is a navigation entry of the site shell.
type Link struct {
	Label  string `json:"label"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// Chrome is the documentation site shell around an example.
type Chrome struct {
	Title      string `json:"title"`
	Logo       string `json:"logo"`
	ProjectURL string `json:"projectUrl"`
	EditURL    string `json:"editUrl,omitempty"`
	Footer     string `json:"footer"`
	Feedback   bool   `json:"feedback"`
	DarkMode   bool   `json:"darkMode"`
	Nav        []Link `json:"nav,omitempty"`
}
