package validation

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formalise/pkg/model"
)

func inviteForm() model.Form {
	return model.Form{
		ID: "invite",
		Initial: model.Values{
			"invitees": []any{map[string]any{"name": "", "email": ""}},
			"question": "a",
		},
		Pages: []model.Page{{
			Name: "invite",
			Fields: []model.Field{
				{
					Name:     "invitees",
					Kind:     model.KindArray,
					Required: true,
					Item: []model.Field{
						{Name: "name", Kind: model.KindText, Required: true},
						{Name: "email", Kind: model.KindEmail},
					},
				},
				{
					Name:    "question",
					Kind:    model.KindSelect,
					Options: []model.Option{{Value: "a"}, {Value: "b"}},
				},
			},
		}},
	}
}

func TestSchemaValidator_AcceptsValidValues(t *testing.T) {
	v := NewSchemaValidator(inviteForm())
	values := model.Values{
		"invitees": []any{map[string]any{"name": "Ana", "email": ""}},
		"question": "b",
	}
	if err := v.Validate("invite", values); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSchemaValidator_ReportsFieldPaths(t *testing.T) {
	v := NewSchemaValidator(inviteForm())
	values := model.Values{
		"invitees": []any{
			map[string]any{"name": "Ana", "email": ""},
			map[string]any{"name": "", "email": ""},
		},
		"question": "c",
	}

	err := v.Validate("invite", values)
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}

	fields := verr.FieldErrors()
	for _, path := range []string{"invitees.1.name", "question"} {
		if len(fields[path]) == 0 {
			t.Fatalf("expected an issue for %s, got %+v", path, verr.Issues)
		}
	}
}

func TestSchemaValidator_UnknownForm(t *testing.T) {
	v := NewSchemaValidator()
	if err := v.Validate("missing", model.Values{}); err == nil {
		t.Fatalf("expected error for unregistered form")
	}
}
