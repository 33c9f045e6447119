package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/progress"
	"github.com/goliatone/go-formalise/pkg/render"
)

// Renderer drives forms in the terminal through a PromptDriver. Render
// collects the fields of a single page; Run walks a controller through every
// page until the form is submitted.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       NewSurveyDriver(defaultStdio()),
		outputFormat: OutputFormatJSON,
		theme:        defaultTheme(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render and Run.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for the fields of one page and returns the resulting values.
// Answers go through page.SetField when present so dependent resets apply.
func (r *Renderer) Render(ctx context.Context, def model.Form, page form.PageContext, _ render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}
	if page.Page < 0 || page.Page >= len(def.Pages) {
		return nil, fmt.Errorf("tui: page %d of %q: %w", page.Page, def.ID, form.ErrPageOutOfRange)
	}
	if page.Total == 0 {
		page.Total = len(def.Pages)
	}

	values := page.Values.Clone()
	if values == nil {
		values = model.Values{}
	}
	set := page.SetField
	if set == nil {
		set = values.Set
	}
	write := func(path string, value any) error {
		if err := set(path, value); err != nil {
			return err
		}
		if page.SetField != nil {
			return values.Set(path, value)
		}
		return nil
	}

	if err := r.announce(ctx, def, page); err != nil {
		return nil, err
	}
	get := func() model.Values { return values }
	if err := r.promptFields(ctx, def.Pages[page.Page].Fields, get, write); err != nil {
		return nil, err
	}
	return r.serialize(values)
}

// Run walks the controller page by page: it prompts for the visible fields,
// then asks which button to press. It returns the serialized values once the
// controller reports a successful submit.
func (r *Renderer) Run(ctx context.Context, ctrl *form.Controller) ([]byte, error) {
	if ctrl == nil {
		return nil, errors.New("tui: controller is required")
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}
	def := ctrl.Form()

	for !ctrl.Submitted() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := ctrl.Context()
		current := def.Pages[page.Page]

		if err := r.announce(ctx, def, page); err != nil {
			return nil, err
		}
		if err := r.promptFields(ctx, current.Fields, ctrl.Values, ctrl.SetField); err != nil {
			return nil, err
		}

		if err := r.choose(ctx, ctrl, current); err != nil {
			return nil, err
		}
	}
	return r.serialize(ctrl.Values())
}

type choice struct {
	label  string
	button int
	array  string
	record int
}

func (r *Renderer) choose(ctx context.Context, ctrl *form.Controller, page model.Page) error {
	var choices []choice
	for index, button := range page.Buttons {
		choices = append(choices, choice{label: button.Label, button: index})
	}
	values := ctrl.Values()
	for _, field := range page.Fields {
		if field.Kind != model.KindArray {
			continue
		}
		for index := range values.Records(field.Name) {
			if !form.Removable(field, index) {
				continue
			}
			choices = append(choices, choice{
				label:  "Remove " + recordLabel(field, index),
				button: -1,
				array:  field.Name,
				record: index,
			})
		}
	}

	if len(choices) == 0 {
		action := form.Advance
		if ctrl.Page() == ctrl.Form().LastPage() {
			action = form.Submit
		}
		return r.apply(ctx, ctrl, action, "")
	}

	options := make([]string, len(choices))
	for i, c := range choices {
		options[i] = c.label
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Next", Options: options})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(choices) {
		return fmt.Errorf("tui: selection %d out of range", idx)
	}
	picked := choices[idx]

	if picked.button < 0 {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: picked.label + "?", Default: true})
		if err != nil || !ok {
			return err
		}
		return ctrl.Delete(picked.array, picked.record)
	}

	action, err := ctrl.Press(picked.button)
	if err != nil {
		return err
	}
	return r.apply(ctx, ctrl, action, picked.label)
}

func (r *Renderer) apply(ctx context.Context, ctrl *form.Controller, action form.Action, button string) error {
	err := ctrl.Apply(ctx, action, form.Event{Source: r.Name(), Button: button, At: time.Now()})
	if err == nil {
		return nil
	}
	var rejected interface{ FieldErrors() map[string][]string }
	if errors.As(err, &rejected) || errors.Is(err, form.ErrGateRejected) {
		return nil
	}
	return err
}

func (r *Renderer) announce(ctx context.Context, def model.Form, page form.PageContext) error {
	current := def.Pages[page.Page]
	title := current.DisplayTitle()
	if page.Page == 0 && def.Title != "" {
		title = def.Title + ": " + title
	}
	lines := []string{r.theme.InfoPrefix + title}
	if current.Progress {
		lines = append(lines, r.progressLine(page.Total, page.Current()))
	}
	if page.Message != "" {
		lines = append(lines, r.theme.ErrorPrefix+page.Message)
	}
	fields, _ := render.SplitErrors(page.Errors)
	paths := make([]string, 0, len(fields))
	for path := range fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		lines = append(lines, r.theme.ErrorPrefix+model.PathLabel(path)+": "+strings.Join(fields[path], "; "))
	}
	return r.driver.Info(ctx, strings.Join(lines, "\n"))
}

// progressLine renders the indicator as glyphs joined by connectors, followed
// by the completed percentage, e.g. "● ━ ◉ ─ ○  33%".
func (r *Renderer) progressLine(total, current int) string {
	var b strings.Builder
	for _, seg := range progress.Segments(total, current) {
		switch seg.State {
		case progress.StateDone:
			b.WriteString(r.theme.Done)
		case progress.StateActive:
			b.WriteString(r.theme.Active)
		default:
			b.WriteString(r.theme.Pending)
		}
		if seg.HasConnector {
			if seg.State == progress.StateDone {
				b.WriteString(" ━ ")
			} else {
				b.WriteString(" ─ ")
			}
		}
	}
	fmt.Fprintf(&b, "  %d%%", progress.Percent(total, current))
	return b.String()
}

// promptFields asks for each field in order. Values are re-read before every
// prompt so kinds and defaults reflect resets applied by earlier answers.
func (r *Renderer) promptFields(ctx context.Context, fields []model.Field, values func() model.Values, set func(string, any) error) error {
	for _, field := range fields {
		if field.Kind == model.KindArray {
			for index := range values().Records(field.Name) {
				label := recordLabel(field, index)
				for _, item := range field.Item {
					path := field.Name + "." + strconv.Itoa(index) + "." + item.Name
					item.Label = label + " " + item.DisplayLabel()
					if err := r.promptField(ctx, item, path, values(), set); err != nil {
						return err
					}
				}
			}
			continue
		}
		if err := r.promptField(ctx, field, field.Name, values(), set); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, path string, values model.Values, set func(string, any) error) error {
	current := values.String(path)
	label := field.DisplayLabel()
	if field.Required {
		label += " *"
	}
	validator := requiredValidator(field.Required)

	var (
		answer string
		err    error
	)
	switch field.ResolveKind(values) {
	case model.KindPassword:
		cfg := InputConfig{Message: label, Validator: validator}
		if current != "" {
			cfg.Help = "Leave empty to keep the current password"
			cfg.Validator = nil
		}
		answer, err = r.driver.Password(ctx, cfg)
		if err == nil && answer == "" {
			return nil
		}
	case model.KindTextarea:
		answer, err = r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current})
	case model.KindSelect:
		options := make([]string, len(field.Options))
		def := 0
		for i, option := range field.Options {
			options[i] = option.Label
			if options[i] == "" {
				options[i] = option.Value
			}
			if option.Value == current {
				def = i
			}
		}
		var idx int
		idx, err = r.driver.Select(ctx, SelectConfig{Message: label, Options: options, DefaultIndex: def})
		if err == nil {
			if idx < 0 || idx >= len(field.Options) {
				return fmt.Errorf("tui: option %d out of range for %q", idx, path)
			}
			answer = field.Options[idx].Value
		}
	case model.KindDate:
		answer, err = r.driver.Input(ctx, InputConfig{
			Message:     label,
			Default:     current,
			Placeholder: "YYYY-MM-DD",
			Help:        "Date as YYYY-MM-DD",
			Validator:   dateValidator(field.Required),
		})
	default:
		answer, err = r.driver.Input(ctx, InputConfig{
			Message:     label,
			Default:     current,
			Placeholder: field.Placeholder,
			Validator:   validator,
		})
	}
	if err != nil {
		return err
	}
	if answer == current {
		return nil
	}
	return set(path, answer)
}

func recordLabel(field model.Field, index int) string {
	if label := field.ItemPlaceholder(index); label != "" {
		return label
	}
	return field.DisplayLabel() + " " + strconv.Itoa(index+1)
}

func requiredValidator(required bool) func(string) error {
	if !required {
		return nil
	}
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New("value is required")
		}
		return nil
	}
}

func dateValidator(required bool) func(string) error {
	return func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			if required {
				return errors.New("value is required")
			}
			return nil
		}
		if _, err := time.Parse(time.DateOnly, value); err != nil {
			return fmt.Errorf("expected YYYY-MM-DD")
		}
		return nil
	}
}

func (r *Renderer) serialize(values model.Values) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return jsonBytes(values)
	}
}

func flattenForm(values model.Values) string {
	out := url.Values{}
	flatten("", map[string]any(values), out)
	return out.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			flatten(join(prefix, key), child, out)
		}
	case model.Values:
		flatten(prefix, map[string]any(v), out)
	case []any:
		for i, child := range v {
			flatten(join(prefix, strconv.Itoa(i)), child, out)
		}
	case nil:
		out.Add(prefix, "")
	default:
		out.Add(prefix, fmt.Sprint(v))
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func prettyPrint(values model.Values) string {
	form := url.Values{}
	flatten("", map[string]any(values), form)
	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %s\n", key, strings.Join(form[key], ", "))
	}
	return b.String()
}

func jsonBytes(values model.Values) ([]byte, error) {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode values: %w", err)
	}
	return data, nil
}
