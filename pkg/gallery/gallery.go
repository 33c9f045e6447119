package gallery

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/validation"
)

// ErrUnknownExample is returned by Lookup for an id no example uses.
var ErrUnknownExample = errors.New("gallery: unknown example")

// GateEmail is the address the validated example accepts.
const GateEmail = "kun@home.com"

// GateMessage is shown when the validated example rejects the email.
const GateMessage = "The email does not match. Try entering kun@home.com to access the next page on this form."

const (
	LoginID     = "login"
	ValidatedID = "validated"
	DependentID = "dependent"
	ProgressID  = "progress"
	InviteesID  = "invitees"
)

var questionOptions = []model.Option{
	{Value: "a", Label: "What's your birthday?"},
	{Value: "b", Label: "In what town were you born?"},
}

// Forms returns the examples in the order the site lists them.
func Forms() []model.Form {
	return []model.Form{Login(), Validated(), Dependent(), Progress(), Invitees()}
}

// IDs returns the example ids sorted alphabetically.
func IDs() []string {
	forms := Forms()
	ids := make([]string, 0, len(forms))
	for _, form := range forms {
		ids = append(ids, form.ID)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the example registered under id.
func Lookup(id string) (model.Form, error) {
	for _, form := range Forms() {
		if form.ID == id {
			return form, nil
		}
	}
	return model.Form{}, fmt.Errorf("%w: %q", ErrUnknownExample, id)
}

// Validator returns a schema validator covering every example.
func Validator() *validation.SchemaValidator {
	return validation.NewSchemaValidator(Forms()...)
}

func credentialsInitial() model.Values {
	return model.Values{"email": "", "password": "", "question": "a", "answer": ""}
}

func credentialFields() []model.Field {
	return []model.Field{
		{Name: "email", Kind: model.KindEmail, Placeholder: "Email"},
		{Name: "password", Kind: model.KindPassword, Placeholder: "Password"},
	}
}

func finishButtons() []model.Button {
	return []model.Button{
		{Label: "Back", Role: model.RoleBack, Style: "orange"},
		{Label: "Submit", Role: model.RoleSubmit, Style: "green"},
	}
}

// questionFields returns the security question pair. When dependent is set,
// changing the question clears the answer and a birthday answer is a date.
func questionFields(dependent bool) []model.Field {
	question := model.Field{Name: "question", Kind: model.KindSelect, Options: questionOptions}
	answer := model.Field{Name: "answer", Kind: model.KindText, Placeholder: "Answer"}
	if dependent {
		question.Resets = []string{"answer"}
		answer.KindWhen = &model.KindSwitch{
			Field:   "question",
			Cases:   map[string]model.Kind{"a": model.KindDate},
			Default: model.KindText,
		}
	}
	return []model.Field{question, answer}
}
