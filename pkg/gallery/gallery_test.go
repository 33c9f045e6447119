package gallery_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/gallery"
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/progress"
	"github.com/goliatone/go-formalise/pkg/testsupport"
	"github.com/goliatone/go-formalise/pkg/validation"
)

func newController(t *testing.T, id string, options ...form.Option) *form.Controller {
	t.Helper()
	def, err := gallery.Lookup(id)
	if err != nil {
		t.Fatalf("lookup %q: %v", id, err)
	}
	ctrl, err := form.New(def, options...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

func TestFormsAreValid(t *testing.T) {
	for _, def := range gallery.Forms() {
		if err := def.Validate(); err != nil {
			t.Errorf("%s: %v", def.ID, err)
		}
	}
	want := []string{"dependent", "invitees", "login", "progress", "validated"}
	if diff := cmp.Diff(want, gallery.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := gallery.Lookup("nope"); !errors.Is(err, gallery.ErrUnknownExample) {
		t.Fatalf("expected ErrUnknownExample, got %v", err)
	}
}

func TestValidatedGate(t *testing.T) {
	ctx := context.Background()
	ctrl := newController(t, gallery.ValidatedID)

	if err := ctrl.SetField("email", "someone@home.com"); err != nil {
		t.Fatalf("set email: %v", err)
	}
	action, err := ctrl.Handle(ctx, 0, "test")
	if err != nil {
		t.Fatalf("continue: %v", err)
	}
	if action != form.Stay || ctrl.Page() != 0 || ctrl.Message() != gallery.GateMessage {
		t.Fatalf("expected rejection, got action=%v page=%d message=%q", action, ctrl.Page(), ctrl.Message())
	}

	if err := ctrl.SetField("email", gallery.GateEmail); err != nil {
		t.Fatalf("set email: %v", err)
	}
	if _, err := ctrl.Handle(ctx, 0, "test"); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if ctrl.Page() != 1 || ctrl.Message() != "" {
		t.Fatalf("expected page 1 without message, got page=%d message=%q", ctrl.Page(), ctrl.Message())
	}
}

func TestDependentResetsAnswer(t *testing.T) {
	ctrl := newController(t, gallery.DependentID)
	def := ctrl.Form()
	answer, _ := def.Field("answer")

	if got := answer.ResolveKind(ctrl.Values()); got != model.KindDate {
		t.Fatalf("expected date answer for birthday question, got %q", got)
	}
	if err := ctrl.SetField("answer", "2000-01-01"); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if err := ctrl.SetField("question", "b"); err != nil {
		t.Fatalf("set question: %v", err)
	}
	values := ctrl.Values()
	if values.String("answer") != "" {
		t.Fatalf("expected answer to be cleared, got %q", values.String("answer"))
	}
	if got := answer.ResolveKind(values); got != model.KindText {
		t.Fatalf("expected text answer for town question, got %q", got)
	}
}

func TestProgressSegmentsFollowPage(t *testing.T) {
	ctrl := newController(t, gallery.ProgressID)
	if _, err := ctrl.Handle(context.Background(), 0, "test"); err != nil {
		t.Fatalf("continue: %v", err)
	}
	want := []progress.Segment{
		{Index: 0, State: progress.StateDone, HasConnector: true},
		{Index: 1, State: progress.StateActive, HasConnector: false},
	}
	if diff := cmp.Diff(want, ctrl.Context().Progress()); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestInviteesSubmitThroughSchema(t *testing.T) {
	var submitted model.Values
	ctrl := newController(t, gallery.InviteesID,
		form.WithValidator(gallery.Validator()),
		form.WithSubmit(func(_ context.Context, values model.Values, _ form.Event) error {
			submitted = values
			return nil
		}),
	)

	if _, err := ctrl.Handle(context.Background(), 0, "test"); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := ctrl.SetField("invitees.1.name", "Dara"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if _, err := ctrl.Handle(context.Background(), 1, "test"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := model.Values{
		"invitees": []any{
			map[string]any{"name": "", "email": ""},
			map[string]any{"name": "Dara", "email": ""},
		},
		"message": "",
	}
	if diff := cmp.Diff(want, submitted); diff != "" {
		t.Fatalf("submitted mismatch (-want +got):\n%s", diff)
	}
}

func TestValidatorFixtures(t *testing.T) {
	validator := gallery.Validator()

	valid := testsupport.MustLoadValues(t, filepath.Join("testdata", "invitees.json"))
	if err := validator.Validate(gallery.InviteesID, valid); err != nil {
		t.Fatalf("expected invitees fixture to validate: %v", err)
	}

	invalid := testsupport.MustLoadValues(t, filepath.Join("testdata", "dependent_unknown_question.json"))
	err := validator.Validate(gallery.DependentID, invalid)
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}
	if len(verr.FieldErrors()["question"]) == 0 {
		t.Fatalf("expected an issue for question, got %+v", verr.Issues)
	}
}
