package formalise

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formalise/pkg/gallery"
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/renderers/vanilla"
)

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/layout.tmpl"); err != nil {
		t.Fatalf("expected layout template to be readable: %v", err)
	}
	data, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".fl-progress") {
		t.Fatalf("expected progress styles in stylesheet")
	}
}

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background(), gallery.LoginID, 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `type="email"`) {
		t.Fatalf("expected email input in output")
	}
}

func TestGenerateHTMLFromForm(t *testing.T) {
	def := model.Form{
		ID:      "note",
		Initial: model.Values{"note": ""},
		Pages:   []model.Page{{Name: "note", Fields: []model.Field{{Name: "note", Kind: model.KindTextarea}}}},
	}
	out, err := GenerateHTMLFromForm(context.Background(), def, 0, model.Values{"note": "hello"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "hello") {
		t.Fatalf("expected posted value in output")
	}
}
