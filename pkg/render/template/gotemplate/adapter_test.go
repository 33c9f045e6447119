package gotemplate_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formalise/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tmpl":   {Data: []byte(`Hello {{ name|trim }}`)},
		"global.tmpl":  {Data: []byte(`{{ site.title }}`)},
		"segment.tmpl": {Data: []byte(`{% for s in segments %}[{{ s.index|ordinal }}:{{ s.state }}]{% endfor %}`)},
		"escape.tmpl":  {Data: []byte(`{{ value }}`)},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var out strings.Builder
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "  Kun "}, &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Kun" {
		t.Fatalf("unexpected output %q", got)
	}
	if out.String() != got {
		t.Fatalf("writer got %q, want %q", out.String(), got)
	}
}

func TestEngineStructsUseJSONTags(t *testing.T) {
	engine := newEngine(t)

	type segment struct {
		Index int    `json:"index"`
		State string `json:"state"`
	}
	got, err := engine.RenderTemplate("segment.tmpl", map[string]any{
		"segments": []segment{{0, "done"}, {1, "active"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "[1:done][2:active]" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{"site": map[string]any{"title": "Formalise"}}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err := engine.RenderTemplate("global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Formalise" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineEscapesValues(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("escape", map[string]any{"value": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngineRenderString(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": "x", "b": 2})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "x-2" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("formalise_shout", func(input any, _ any) (any, error) {
		s, _ := input.(string)
		return strings.ToUpper(s), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("formalise_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
	got, err := engine.RenderString(`{{ word|formalise_shout }}`, map[string]any{"word": "next"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "NEXT" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}
