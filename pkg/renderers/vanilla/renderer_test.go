package vanilla_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/render"
	"github.com/goliatone/go-formalise/pkg/renderers/vanilla"
)

func progressForm() model.Form {
	page := func(name string) model.Page {
		return model.Page{
			Name:     name,
			Progress: true,
			Fields:   []model.Field{{Name: name + "Note", Kind: model.KindText}},
			Buttons: []model.Button{
				{Label: "Back", Role: model.RoleBack},
				{Label: "Continue", Role: model.RoleContinue},
			},
		}
	}
	return model.Form{
		ID:    "progress",
		Title: "Page Progress Display",
		Pages: []model.Page{page("first"), page("second"), page("third")},
	}
}

func inviteForm() model.Form {
	return model.Form{
		ID:    "invitees",
		Title: "Dynamic Fields",
		Initial: model.Values{
			"invitees": []any{map[string]any{"email": ""}},
			"message":  "",
		},
		Pages: []model.Page{
			{
				Name:  "invite",
				Intro: `<p>Invite your <em>team</em></p><script>alert(1)</script>`,
				Fields: []model.Field{
					{
						Name:      "invitees",
						Kind:      model.KindArray,
						ItemLabel: "Person %d",
						Item:      []model.Field{{Name: "email", Kind: model.KindEmail}},
					},
				},
				Buttons: []model.Button{
					{Label: "+ Add Invitees", Role: model.RolePush, Target: "invitees"},
					{Label: "Continue", Role: model.RoleContinue},
				},
			},
			{
				Name:    "message",
				Fields:  []model.Field{{Name: "message", Kind: model.KindTextarea}},
				Buttons: []model.Button{{Label: "Submit", Role: model.RoleSubmit}},
			},
		},
	}
}

func newRenderer(t *testing.T) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

var spanClass = regexp.MustCompile(`<span class="([^"]+)"`)

func TestRenderProgressBubbles(t *testing.T) {
	renderer := newRenderer(t)
	def := progressForm()

	out, err := renderer.Render(context.Background(), def, form.PageContext{Page: 1, Total: 3}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	var classes []string
	for _, match := range spanClass.FindAllStringSubmatch(html, -1) {
		classes = append(classes, match[1])
	}
	want := []string{
		"fl-bubble fl-bubble--done",
		"fl-line fl-line--done",
		"fl-bubble fl-bubble--active",
		"fl-line",
		"fl-bubble",
	}
	if diff := cmp.Diff(want, classes); diff != "" {
		t.Fatalf("progress classes mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(html, `aria-current="step">2</span>`) {
		t.Fatalf("expected active bubble labelled 2, got:\n%s", html)
	}
	if !strings.Contains(html, `name="_page" value="1"`) {
		t.Fatalf("expected page hidden input, got:\n%s", html)
	}
}

func TestRenderOmitsProgressWhenDisabled(t *testing.T) {
	renderer := newRenderer(t)
	def := inviteForm()
	values := def.Initial.Clone()

	out, err := renderer.Render(context.Background(), def, form.PageContext{Page: 0, Total: 2, Values: values}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "fl-bubble") {
		t.Fatalf("did not expect progress bubbles")
	}
}

func TestRenderArrayPinsFirstRecord(t *testing.T) {
	renderer := newRenderer(t)
	def := inviteForm()
	values := def.Initial.Clone()
	values["invitees"] = []any{
		map[string]any{"email": "a@home.com"},
		map[string]any{"email": ""},
	}

	out, err := renderer.Render(context.Background(), def, form.PageContext{Page: 0, Total: 2, Values: values}, render.RenderOptions{
		Action: "/examples/invitees",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	if strings.Contains(html, `value="delete:invitees:0"`) {
		t.Fatalf("record 0 must not render a remove control")
	}
	if !strings.Contains(html, `value="delete:invitees:1"`) {
		t.Fatalf("expected remove control for record 1, got:\n%s", html)
	}
	for _, want := range []string{
		`name="invitees.0.email" value="a@home.com" placeholder="Person 1"`,
		`name="invitees.1.email" value="" placeholder="Person 2"`,
		`value="button:0"`,
		`action="/examples/invitees"`,
		`name="message" value=""`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRenderSanitisesIntro(t *testing.T) {
	renderer := newRenderer(t)
	def := inviteForm()

	out, err := renderer.Render(context.Background(), def, form.PageContext{Page: 0, Values: def.Initial.Clone()}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "<script>") {
		t.Fatalf("script survived sanitising:\n%s", html)
	}
	if !strings.Contains(html, "<em>team</em>") {
		t.Fatalf("expected inline markup to be kept:\n%s", html)
	}
}

func TestRenderMessagesAndFieldErrors(t *testing.T) {
	renderer := newRenderer(t)
	def := inviteForm()

	out, err := renderer.Render(context.Background(), def, form.PageContext{
		Page:    0,
		Values:  def.Initial.Clone(),
		Message: "Wrong email",
		Errors:  map[string][]string{"invitees.0.email": {"must be an email"}},
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{"<p>Wrong email</p>", "fl-field--invalid", "must be an email"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRenderResetControl(t *testing.T) {
	renderer := newRenderer(t)
	def := model.Form{
		ID: "dependent",
		Pages: []model.Page{{
			Name: "questions",
			Fields: []model.Field{
				{Name: "question", Kind: model.KindSelect, Resets: []string{"answer"}, Options: []model.Option{{Value: "a"}, {Value: "b"}}},
				{Name: "answer", Kind: model.KindText, KindWhen: &model.KindSwitch{Field: "question", Cases: map[string]model.Kind{"a": model.KindDate}}},
			},
		}},
	}

	out, err := renderer.Render(context.Background(), def, form.PageContext{Values: model.Values{"question": "a"}}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`name="_prev.question" value="a"`,
		`value="change:question"`,
		`<option value="a" selected>a</option>`,
		`type="date" name="answer"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRenderDocumentChrome(t *testing.T) {
	renderer := newRenderer(t)
	def := progressForm()

	out, err := renderer.Render(context.Background(), def, form.PageContext{Page: 0, Total: 3}, render.RenderOptions{
		Chrome: &render.Chrome{
			Title:      "Page Progress Display - Formalise",
			Logo:       "<Formalise/>",
			ProjectURL: "https://github.com/stainedatom/formalise",
			Footer:     "MIT License 2026 © Panhaboth Kun",
			DarkMode:   true,
		},
		Theme: &theme.RendererConfig{
			Theme:   "formalise",
			Variant: "light",
			CSSVars: map[string]string{"--fl-accent": "#ff0000", "--bad": "red;}</style>"},
			AssetURL: func(key string) string {
				if key == vanilla.StylesheetAsset {
					return "/assets/themes/formalise/theme.css"
				}
				return ""
			},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		"<title>Page Progress Display - Formalise</title>",
		"&lt;Formalise/&gt;",
		`<html lang="en" class="dark">`,
		`href="/assets/themes/formalise/theme.css"`,
		"--fl-accent: #ff0000;",
		"MIT License 2026",
		`data-variant="light"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Contains(html, "--bad") {
		t.Fatalf("unsafe css var leaked into output")
	}
}

func TestRenderRejectsPageOutOfRange(t *testing.T) {
	renderer := newRenderer(t)
	_, err := renderer.Render(context.Background(), progressForm(), form.PageContext{Page: 5}, render.RenderOptions{})
	if !errors.Is(err, form.ErrPageOutOfRange) {
		t.Fatalf("expected ErrPageOutOfRange, got %v", err)
	}
}

func TestAssetsFSContainsStylesheet(t *testing.T) {
	file, err := vanilla.AssetsFS().Open(vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("open stylesheet: %v", err)
	}
	_ = file.Close()
}

func TestRenderIndexListsEntries(t *testing.T) {
	renderer := newRenderer(t)
	out, err := renderer.RenderIndex(context.Background(), "Examples", []vanilla.IndexEntry{
		{Title: "Multi-Page Form", URL: "/examples/login"},
		{Title: "Dynamic Fields", Description: "Add & remove", URL: "/examples/invitees"},
	}, render.RenderOptions{Chrome: &render.Chrome{Title: "Formalise", Logo: "<Formalise/>"}})
	if err != nil {
		t.Fatalf("render index: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		"<title>Formalise</title>",
		"<h1>Examples</h1>",
		`<a href="/examples/login">Multi-Page Form</a>`,
		"Add &amp; remove",
		`href="/assets/formalise.css"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}
