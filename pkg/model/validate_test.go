package model

import (
	"strings"
	"testing"
)

func TestForm_ValidateAcceptsWellFormedForm(t *testing.T) {
	form := Form{
		ID:      "invite",
		Initial: Values{"invitees": []any{map[string]any{"name": ""}}},
		Pages: []Page{{
			Name: "people",
			Fields: []Field{
				{Name: "invitees", Kind: KindArray, Item: []Field{{Name: "name", Kind: KindText}}},
				{Name: "question", Kind: KindSelect, Options: []Option{{Value: "a"}}, Resets: []string{"answer"}},
				{Name: "answer", Kind: KindText, KindWhen: &KindSwitch{Field: "question", Cases: map[string]Kind{"a": KindDate}}},
			},
			Buttons: []Button{{Label: "Add", Role: RolePush, Target: "invitees"}},
		}},
	}
	if err := form.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestForm_ValidateReportsEveryProblem(t *testing.T) {
	form := Form{
		ID: "broken",
		Pages: []Page{{
			Fields: []Field{
				{Name: "email", Kind: KindText},
				{Name: "email", Kind: KindText, Resets: []string{"ghost"}},
				{Name: "list", Kind: KindArray},
				{Name: "choice", Kind: KindSelect},
			},
			Buttons: []Button{{Role: RolePush, Target: "email"}},
		}},
	}

	err := form.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, fragment := range []string{
		`field "email" declared twice`,
		`resets unknown field "ghost"`,
		`array field "list" has no item fields`,
		`select field "choice" has no options`,
		`push target "email" is not an array field`,
	} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in error, got %v", fragment, err)
		}
	}
}

func TestField_ResolveKind(t *testing.T) {
	field := Field{
		Name: "answer",
		Kind: KindText,
		KindWhen: &KindSwitch{
			Field:   "question",
			Cases:   map[string]Kind{"a": KindDate},
			Default: KindText,
		},
	}
	if got := field.ResolveKind(Values{"question": "a"}); got != KindDate {
		t.Fatalf("expected date, got %s", got)
	}
	if got := field.ResolveKind(Values{"question": "b"}); got != KindText {
		t.Fatalf("expected text, got %s", got)
	}
}

func TestForm_BlockedGate(t *testing.T) {
	gate := &Gate{Check: func(v Values) bool { return v.String("code") == "ok" }, Message: "bad code"}
	form := Form{
		ID: "gated",
		Pages: []Page{
			{Name: "intro", Buttons: []Button{{Label: "Next", Role: RoleContinue}}},
			{Name: "code", Buttons: []Button{{Label: "Next", Role: RoleContinue, Gate: gate}}},
			{Name: "done", Buttons: []Button{{Label: "Submit", Role: RoleSubmit}}},
		},
	}

	if _, _, blocked := form.BlockedGate(Values{"code": "no"}, 1); blocked {
		t.Fatalf("gates on or after the current page must not be checked")
	}
	page, got, blocked := form.BlockedGate(Values{"code": "no"}, 2)
	if !blocked || page != 1 || got != gate {
		t.Fatalf("expected gate on page 1, got page %d blocked=%v", page, blocked)
	}
	if _, _, blocked := form.BlockedGate(Values{"code": "ok"}, len(form.Pages)); blocked {
		t.Fatalf("passing values must not be blocked")
	}
}
