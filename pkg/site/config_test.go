package site_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formalise/pkg/render"
	"github.com/goliatone/go-formalise/pkg/site"
)

func TestDefaultsMatchSite(t *testing.T) {
	cfg := site.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Logo != "<Formalise/>" {
		t.Fatalf("unexpected logo %q", cfg.Logo)
	}
	if cfg.Feedback || cfg.EditLink || cfg.DarkMode {
		t.Fatalf("feedback, edit link and dark mode are off by default: %+v", cfg)
	}
	if got := cfg.Title("Page Progress Display"); got != "Page Progress Display - Formalise" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := cfg.Title(""); got != "<Formalise/>" {
		t.Fatalf("unexpected bare title %q", got)
	}
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	if got := cfg.FooterText(now); got != "MIT License 2026 © Panhaboth Kun" {
		t.Fatalf("unexpected footer %q", got)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := site.Parse([]byte(`
logo: Formalise Docs
editLink: true
theme:
  variant: dark
  tokens:
    fl-accent: "#ff0000"
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Logo != "Formalise Docs" {
		t.Fatalf("logo not overridden: %q", cfg.Logo)
	}
	if cfg.ProjectLink != "https://github.com/stainedatom/formalise" {
		t.Fatalf("project link default lost: %q", cfg.ProjectLink)
	}
	if cfg.Theme.Tokens["fl-accent"] != "#ff0000" || cfg.Theme.Tokens["fl-muted"] == "" {
		t.Fatalf("tokens not merged over defaults: %v", cfg.Theme.Tokens)
	}

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	nav := []render.Link{{Label: "Examples", URL: "/", Active: true}}
	got := cfg.Chrome("Dynamic Fields", "examples/invitees", nav, now)
	want := &render.Chrome{
		Title:      "Dynamic Fields - Formalise",
		Logo:       "Formalise Docs",
		ProjectURL: "https://github.com/stainedatom/formalise",
		EditURL:    "https://github.com/stainedatom/formalise-www/blob/main/pages/examples/invitees.mdx",
		Footer:     "MIT License 2024 © Panhaboth Kun",
		DarkMode:   true,
		Nav:        nav,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("chrome mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"title template": `titleTemplate: "Formalise"`,
		"unknown variant": `theme:
  variant: sepia`,
		"malformed yaml": `logo: [`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := site.Parse([]byte(input)); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := site.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(site.Default(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte("feedback: true\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := site.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Feedback {
		t.Fatalf("feedback not loaded")
	}
	if strings.Contains(cfg.EditURL("index"), "http") {
		t.Fatalf("edit link disabled, got %q", cfg.EditURL("index"))
	}
}
