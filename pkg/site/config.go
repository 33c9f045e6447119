package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formalise/pkg/render"
)

// Config is the site shell configuration.
type Config struct {
	Logo               string      `yaml:"logo"`
	ProjectLink        string      `yaml:"projectLink"`
	DocsRepositoryBase string      `yaml:"docsRepositoryBase"`
	Footer             string      `yaml:"footer"`
	Feedback           bool        `yaml:"feedback"`
	EditLink           bool        `yaml:"editLink"`
	DarkMode           bool        `yaml:"darkMode"`
	TitleTemplate      string      `yaml:"titleTemplate"`
	Theme              ThemeConfig `yaml:"theme"`
}

// Default returns the configuration of the Formalise documentation site.
func Default() Config {
	return Config{
		Logo:               "<Formalise/>",
		ProjectLink:        "https://github.com/stainedatom/formalise",
		DocsRepositoryBase: "https://github.com/stainedatom/formalise-www",
		Footer:             "MIT License {year} © Panhaboth Kun",
		TitleTemplate:      "%s - Formalise",
		Theme:              DefaultTheme(),
	}
}

// Parse decodes YAML over the defaults. Keys absent from data keep their
// default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("site: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path and parses it. An empty path or a missing file yields the
// defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("site: read config %q: %w", path, err)
	}
	return Parse(data)
}

// Validate checks the fields that templates depend on.
func (c Config) Validate() error {
	var problems []error
	if strings.Count(c.TitleTemplate, "%s") != 1 {
		problems = append(problems, fmt.Errorf("titleTemplate must contain exactly one %%s, got %q", c.TitleTemplate))
	}
	if strings.TrimSpace(c.Theme.Name) == "" {
		problems = append(problems, errors.New("theme.name is required"))
	}
	if c.Theme.Variant != "" {
		if _, ok := c.Theme.Variants[c.Theme.Variant]; !ok {
			problems = append(problems, fmt.Errorf("theme variant %q is not declared", c.Theme.Variant))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("site: invalid config: %w", errors.Join(problems...))
	}
	return nil
}

// Title applies the title template to a page title. An empty page title
// yields the bare logo text.
func (c Config) Title(page string) string {
	if strings.TrimSpace(page) == "" {
		return c.Logo
	}
	return fmt.Sprintf(c.TitleTemplate, page)
}

// FooterText substitutes {year} with the year of now.
func (c Config) FooterText(now time.Time) string {
	return strings.ReplaceAll(c.Footer, "{year}", strconv.Itoa(now.Year()))
}

// EditURL links a documentation page to its source when edit links are
// enabled.
func (c Config) EditURL(page string) string {
	if !c.EditLink || c.DocsRepositoryBase == "" || page == "" {
		return ""
	}
	return strings.TrimSuffix(c.DocsRepositoryBase, "/") + "/blob/main/pages/" + strings.TrimPrefix(page, "/") + ".mdx"
}

// Chrome builds the renderer shell for a page.
func (c Config) Chrome(pageTitle, pagePath string, nav []render.Link, now time.Time) *render.Chrome {
	return &render.Chrome{
		Title:      c.Title(pageTitle),
		Logo:       c.Logo,
		ProjectURL: c.ProjectLink,
		EditURL:    c.EditURL(pagePath),
		Footer:     c.FooterText(now),
		Feedback:   c.Feedback,
		DarkMode:   c.DarkMode || c.Theme.Variant == "dark",
		Nav:        nav,
	}
}
