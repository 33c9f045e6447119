package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/progress"
)

// Event describes what triggered a submission.
type Event struct {
	// Source identifies the transport ("http", "tui", "test").
	Source string
	// Button is the label of the pressed button, if any.
	Button string
	At     time.Time
}

// SubmitFunc receives the final values once the user submits the form.
type SubmitFunc func(ctx context.Context, values model.Values, event Event) error

// Validator checks the final values before they reach the submit handler.
// Errors that implement FieldErrors() map[string][]string are surfaced per
// field.
type Validator interface {
	Validate(formID string, values model.Values) error
}

type fieldErrorer interface {
	FieldErrors() map[string][]string
}

// Option configures a Controller.
type Option func(*Controller)

// WithSubmit registers the submit handler.
func WithSubmit(fn SubmitFunc) Option {
	return func(c *Controller) {
		c.submit = fn
	}
}

// WithValidator registers a validator that runs before submit.
func WithValidator(v Validator) Option {
	return func(c *Controller) {
		c.validator = v
	}
}

// WithClock overrides the time source used for events.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// PageContext is handed to page renderers. It is rebuilt by the controller
// for every render.
type PageContext struct {
	// Page is the 0-based index of the displayed page.
	Page int
	// Total is the number of pages of the form.
	Total   int
	Values  model.Values
	Message string
	Errors  map[string][]string
	// SetField updates a single field and applies dependent resets.
	SetField func(name string, value any) error
}

// Current returns the 1-based page number used by progress indicators.
func (p PageContext) Current() int {
	return p.Page + 1
}

// Progress returns the indicator segments for the page.
func (p PageContext) Progress() []progress.Segment {
	return progress.Segments(p.Total, p.Current())
}

// Controller owns page navigation and values for one form session.
type Controller struct {
	form      model.Form
	page      int
	values    model.Values
	message   string
	errors    map[string][]string
	submitted bool

	submit    SubmitFunc
	validator Validator
	now       func() time.Time
}

// New validates the definition and returns a controller positioned on the
// first page with a copy of the initial values.
func New(def model.Form, options ...Option) (*Controller, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		form:   def,
		values: def.Initial.Clone(),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Form returns the definition the controller runs.
func (c *Controller) Form() model.Form { return c.form }

// Page returns the 0-based current page index.
func (c *Controller) Page() int { return c.page }

// Values returns a copy of the current values.
func (c *Controller) Values() model.Values { return c.values.Clone() }

// Message returns the user-visible message of the current page.
func (c *Controller) Message() string { return c.message }

// Errors returns the field errors of the last failed submit.
func (c *Controller) Errors() map[string][]string { return c.errors }

// Submitted reports whether the submit handler ran successfully.
func (c *Controller) Submitted() bool { return c.submitted }

// CurrentPage returns the definition of the displayed page.
func (c *Controller) CurrentPage() model.Page {
	return c.form.Pages[c.page]
}

// Context builds the page context for renderers.
func (c *Controller) Context() PageContext {
	return PageContext{
		Page:     c.page,
		Total:    len(c.form.Pages),
		Values:   c.values.Clone(),
		Message:  c.message,
		Errors:   c.errors,
		SetField: c.SetField,
	}
}

// Restore positions the controller on page with values overlaid on the
// initial values. Keys that do not name a declared field are ignored.
func (c *Controller) Restore(page int, values model.Values) error {
	if page < 0 || page > c.form.LastPage() {
		return fmt.Errorf("%w: %d", ErrPageOutOfRange, page)
	}
	restored := c.form.Initial.Clone()
	for key, value := range values.Clone() {
		if _, ok := c.form.Field(key); !ok {
			continue
		}
		restored[key] = value
	}
	c.page = page
	c.values = restored
	c.message = ""
	c.errors = nil
	return nil
}

// SetField writes a value at path. When path names a top-level field, the
// fields it resets are restored to their initial values.
func (c *Controller) SetField(path string, value any) error {
	name, _, _ := strings.Cut(path, ".")
	field, ok := c.form.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	if err := c.values.Set(path, value); err != nil {
		return fmt.Errorf("form: %w", err)
	}
	if path == name {
		for _, reset := range field.Resets {
			c.values[reset] = c.initialValue(reset)
		}
	}
	c.message = ""
	return nil
}

// Press resolves the button at index on the current page into an action.
// Continue buttons run their gate; a rejection records the gate message and
// yields Stay. Push buttons append a record and yield Stay.
func (c *Controller) Press(index int) (Action, error) {
	page := c.CurrentPage()
	if index < 0 || index >= len(page.Buttons) {
		return Stay, fmt.Errorf("%w: %d", ErrUnknownButton, index)
	}
	button := page.Buttons[index]

	switch button.Role {
	case model.RoleContinue:
		if !button.Gate.Allows(c.values.Clone()) {
			c.message = button.Gate.Message
			return Stay, nil
		}
		c.message = ""
		return Advance, nil
	case model.RoleBack:
		c.message = ""
		return Retreat, nil
	case model.RoleSubmit:
		return Submit, nil
	case model.RolePush:
		if err := c.Push(button.Target); err != nil {
			return Stay, err
		}
		return Stay, nil
	default:
		return Stay, fmt.Errorf("form: button %q has unsupported role %q", button.Label, button.Role)
	}
}

// Apply executes an action. Advance past the last page and Retreat before the
// first page do nothing. Submit re-checks the gates of earlier pages, then runs
// the validator and the submit handler.
func (c *Controller) Apply(ctx context.Context, action Action, event Event) error {
	switch action {
	case Advance:
		if c.page < c.form.LastPage() {
			c.page++
			c.errors = nil
		}
	case Retreat:
		if c.page > 0 {
			c.page--
			c.errors = nil
		}
	case Submit:
		return c.runSubmit(ctx, event)
	}
	return nil
}

// Handle presses the button at index and applies the resulting action.
func (c *Controller) Handle(ctx context.Context, index int, source string) (Action, error) {
	action, err := c.Press(index)
	if err != nil {
		return action, err
	}
	event := Event{
		Source: source,
		Button: c.CurrentPage().Buttons[index].Label,
		At:     c.now(),
	}
	return action, c.Apply(ctx, action, event)
}

func (c *Controller) runSubmit(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = c.now()
	}
	values := c.values.Clone()

	// Restore accepts any page, so gates the user never passed here are
	// checked again before anything is submitted.
	if page, gate, blocked := c.form.BlockedGate(values, c.page); blocked {
		c.page = page
		c.message = gate.Message
		c.errors = nil
		return &GateError{Page: page, Message: gate.Message}
	}

	if c.validator != nil {
		if err := c.validator.Validate(c.form.ID, values); err != nil {
			c.message = "Please correct the highlighted fields."
			var fe fieldErrorer
			if errors.As(err, &fe) {
				c.errors = fe.FieldErrors()
			}
			return err
		}
	}

	if c.submit != nil {
		if err := c.submit(ctx, values, event); err != nil {
			return fmt.Errorf("form: submit %q: %w", c.form.ID, err)
		}
	}
	c.message = ""
	c.errors = nil
	c.submitted = true
	return nil
}

func (c *Controller) initialValue(name string) any {
	if value, ok := c.form.Initial.Clone()[name]; ok {
		return value
	}
	return ""
}
