package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/render"
)

type stubRenderer struct{ name, contentType string }

func (s stubRenderer) Name() string { return s.name }
func (s stubRenderer) ContentType() string {
	if s.contentType == "" {
		return "text/plain"
	}
	return s.contentType
}
func (s stubRenderer) Render(context.Context, model.Form, form.PageContext, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "vanilla"})
	reg.MustRegister(stubRenderer{name: "tui"})

	if err := reg.Register(stubRenderer{name: "tui"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected error for unnamed renderer")
	}
	if diff := cmp.Diff([]string{"tui", "vanilla"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if _, err := reg.Get("preact"); err == nil {
		t.Fatalf("expected lookup error")
	}
	got, err := reg.Get("vanilla")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "vanilla" {
		t.Fatalf("unexpected renderer %q", got.Name())
	}
}

func TestRegistryByContentType(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	reg.MustRegister(stubRenderer{name: "tui", contentType: "application/json"})

	cases := map[string]string{
		"text/html":                       "vanilla",
		"TEXT/HTML; charset=iso-8859-1":   "vanilla",
		"application/json":                "tui",
		"application/json; charset=utf-8": "tui",
	}
	for contentType, want := range cases {
		got, err := reg.ByContentType(contentType)
		if err != nil {
			t.Fatalf("%s: %v", contentType, err)
		}
		if got.Name() != want {
			t.Fatalf("%s: expected %s, got %s", contentType, want, got.Name())
		}
	}
	for _, contentType := range []string{"text/plain", ""} {
		if _, err := reg.ByContentType(contentType); !errors.Is(err, render.ErrNoRenderer) {
			t.Fatalf("%q: expected ErrNoRenderer, got %v", contentType, err)
		}
	}
}
