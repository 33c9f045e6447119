package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	inputConfigs []InputConfig
	selectConfig []SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfig = append(s.selectConfig, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func loginForm() model.Form {
	return model.Form{
		ID:      "validated",
		Title:   "Validated Login",
		Initial: model.Values{"email": "", "password": ""},
		Pages: []model.Page{
			{
				Name:   "email",
				Fields: []model.Field{{Name: "email", Kind: model.KindEmail, Required: true}},
				Buttons: []model.Button{{
					Label: "Continue",
					Role:  model.RoleContinue,
					Gate: &model.Gate{
						Check:   func(v model.Values) bool { return v.String("email") == "kun@home.com" },
						Message: "Wrong email",
					},
				}},
			},
			{
				Name:   "password",
				Fields: []model.Field{{Name: "password", Kind: model.KindPassword}},
				Buttons: []model.Button{
					{Label: "Back", Role: model.RoleBack},
					{Label: "Submit", Role: model.RoleSubmit},
				},
			},
		},
	}
}

func TestRunDrivesTwoPageForm(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"wrong@home.com", "kun@home.com"},
		passwords: []string{"secret"},
		selectIdx: []int{0, 0, 1},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	var submitted model.Values
	ctrl, err := form.New(loginForm(), form.WithSubmit(func(_ context.Context, values model.Values, event form.Event) error {
		submitted = values
		if event.Source != "tui" || event.Button != "Submit" {
			t.Fatalf("unexpected event %+v", event)
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	out, err := r.Run(context.Background(), ctrl)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]any{"email": "kun@home.com", "password": "secret"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.Values(want), submitted); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}

	if len(driver.infoMessages) != 3 {
		t.Fatalf("expected three page announcements, got %d: %q", len(driver.infoMessages), driver.infoMessages)
	}
	if !strings.Contains(driver.infoMessages[1], "! Wrong email") {
		t.Fatalf("expected gate message on retry, got %q", driver.infoMessages[1])
	}
	if driver.inputConfigs[1].Default != "wrong@home.com" {
		t.Fatalf("expected previous answer as default, got %q", driver.inputConfigs[1].Default)
	}
	if diff := cmp.Diff([]string{"Back", "Submit"}, driver.selectConfig[2].Options); diff != "" {
		t.Fatalf("button choices mismatch (-want +got):\n%s", diff)
	}
}

func TestRunAddsAndRemovesRecords(t *testing.T) {
	def := model.Form{
		ID:      "invitees",
		Initial: model.Values{"invitees": []any{map[string]any{"email": ""}}},
		Pages: []model.Page{{
			Name: "invite",
			Fields: []model.Field{{
				Name:      "invitees",
				Kind:      model.KindArray,
				ItemLabel: "Person %d",
				Item:      []model.Field{{Name: "email", Kind: model.KindEmail}},
			}},
			Buttons: []model.Button{
				{Label: "+ Add Invitees", Role: model.RolePush, Target: "invitees"},
				{Label: "Submit", Role: model.RoleSubmit},
			},
		}},
	}
	ctrl, err := form.New(def)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	driver := &stubDriver{
		inputs:    []string{"a@home.com", "a@home.com", "b@home.com", "a@home.com"},
		selectIdx: []int{0, 2, 1},
		confirm:   []bool{true},
	}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatFormURLEncoded))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Run(context.Background(), ctrl)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := string(out); got != "invitees.0.email=a%40home.com" {
		t.Fatalf("unexpected output %q", got)
	}

	wantChoices := []string{"+ Add Invitees", "Submit", "Remove Person 2"}
	if diff := cmp.Diff(wantChoices, driver.selectConfig[1].Options); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if driver.inputConfigs[2].Message != "Person 2 Email" {
		t.Fatalf("unexpected record prompt %q", driver.inputConfigs[2].Message)
	}
}

func TestRenderSinglePageShowsProgress(t *testing.T) {
	page := func(name string) model.Page {
		return model.Page{Name: name, Progress: true, Fields: []model.Field{{Name: name, Kind: model.KindText}}}
	}
	def := model.Form{ID: "progress", Pages: []model.Page{page("one"), page("two"), page("three")}}

	driver := &stubDriver{inputs: []string{"hello"}}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), def, form.PageContext{Page: 1, Total: 3}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "two: hello\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(driver.infoMessages[0], "● ━ ◉ ─ ○  33%") {
		t.Fatalf("unexpected progress line %q", driver.infoMessages[0])
	}
}

func TestRenderResolvesDependentKind(t *testing.T) {
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

	driver := &stubDriver{selectIdx: []int{0}, inputs: []string{"2024-01-02"}}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), def, form.PageContext{Values: model.Values{"question": "b"}}, render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	cfg := driver.inputConfigs[0]
	if cfg.Placeholder != "YYYY-MM-DD" {
		t.Fatalf("expected date prompt, got %+v", cfg)
	}
	if err := cfg.Validator("not a date"); err == nil {
		t.Fatalf("expected date validator to reject input")
	}
	if driver.selectConfig[0].DefaultIndex != 1 {
		t.Fatalf("expected current option as default, got %d", driver.selectConfig[0].DefaultIndex)
	}
}

func TestRenderKeepsPasswordOnEmptyAnswer(t *testing.T) {
	def := model.Form{
		ID: "revisit",
		Pages: []model.Page{{
			Name:   "password",
			Fields: []model.Field{{Name: "password", Kind: model.KindPassword, Required: true}},
		}},
	}

	driver := &stubDriver{passwords: []string{""}}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), def, form.PageContext{Values: model.Values{"password": "s3cret"}}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"password": "s3cret"}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateSurveyInterrupt(t *testing.T) {
	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestSurveyHelpFallsBackToPlaceholder(t *testing.T) {
	if got := help("", "YYYY-MM-DD"); got != "YYYY-MM-DD" {
		t.Fatalf("expected placeholder as help, got %q", got)
	}
	if got := help("Pick a date", "YYYY-MM-DD"); got != "Pick a date" {
		t.Fatalf("expected explicit help, got %q", got)
	}
	if err := translateSurveyErr(nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
