package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formalise/pkg/model"
)

func inviteForm() model.Form {
	invitees := model.Field{
		Name:      "invitees",
		Kind:      model.KindArray,
		ItemLabel: "Person %d",
		Item: []model.Field{
			{Name: "name", Kind: model.KindText},
			{Name: "email", Kind: model.KindEmail},
		},
	}
	return model.Form{
		ID: "invite",
		Initial: model.Values{
			"invitees": []any{map[string]any{"name": "", "email": ""}},
			"message":  "",
		},
		Pages: []model.Page{{
			Name: "invite",
			Fields: []model.Field{
				invitees,
				{Name: "message", Kind: model.KindTextarea},
			},
			Buttons: []model.Button{
				{Label: "+ Add Invitees", Role: model.RolePush, Target: "invitees"},
				{Label: "Send", Role: model.RoleSubmit},
			},
		}},
	}
}

func TestController_PushAndDelete(t *testing.T) {
	c, err := New(inviteForm())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	action, err := c.Press(0)
	if err != nil {
		t.Fatalf("press push: %v", err)
	}
	if action != Stay {
		t.Fatalf("push must not navigate, got %s", action)
	}
	if err := c.SetField("invitees.1.name", "Bo"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Push("invitees"); err != nil {
		t.Fatalf("push: %v", err)
	}
	if got := len(c.Values().Records("invitees")); got != 3 {
		t.Fatalf("expected 3 records, got %d", got)
	}

	if err := c.Delete("invitees", 0); !errors.Is(err, ErrPinnedRecord) {
		t.Fatalf("expected ErrPinnedRecord, got %v", err)
	}
	if err := c.Delete("invitees", 7); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := c.Delete("invitees", 2); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []map[string]any{
		{"name": "", "email": ""},
		{"name": "Bo", "email": ""},
	}
	if diff := cmp.Diff(want, c.Values().Records("invitees")); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestController_PushRejectsScalars(t *testing.T) {
	c, err := New(inviteForm())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Push("message"); !errors.Is(err, ErrNotArray) {
		t.Fatalf("expected ErrNotArray, got %v", err)
	}
	if err := c.Delete("missing", 1); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestRemovable(t *testing.T) {
	field := model.Field{Name: "invitees", Kind: model.KindArray}
	if Removable(field, 0) {
		t.Fatalf("first record must be pinned")
	}
	if !Removable(field, 1) {
		t.Fatalf("second record must be removable")
	}
	field.Pinned = 2
	if Removable(field, 1) {
		t.Fatalf("pinned=2 must protect index 1")
	}
}
