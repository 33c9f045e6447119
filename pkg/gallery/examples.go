package gallery

import (
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/validation"
)

// Login is a two page form: credentials, then a security question.
func Login() model.Form {
	return model.Form{
		ID:          LoginID,
		Title:       "Multi-Page Form",
		Description: "Split a form across pages with Continue and Back buttons.",
		Initial:     credentialsInitial(),
		Pages: []model.Page{
			{
				Name:    "credentials",
				Fields:  credentialFields(),
				Buttons: []model.Button{{Label: "Continue", Role: model.RoleContinue, Style: "green"}},
			},
			{
				Name:    "security",
				Title:   "Security Question",
				Fields:  questionFields(false),
				Buttons: finishButtons(),
			},
		},
	}
}

// Validated only lets the user past the first page with the gate email.
func Validated() model.Form {
	fields := credentialFields()
	fields[0].Required = true
	return model.Form{
		ID:          ValidatedID,
		Title:       "Validation",
		Description: "Run a check before moving to the next page.",
		Initial:     credentialsInitial(),
		Pages: []model.Page{
			{
				Name:   "credentials",
				Fields: fields,
				Buttons: []model.Button{{
					Label: "Continue",
					Role:  model.RoleContinue,
					Style: "green",
					Gate:  validation.Gate(validation.Equals("email", GateEmail), GateMessage),
				}},
			},
			{
				Name:    "security",
				Title:   "Security Question",
				Fields:  questionFields(false),
				Buttons: finishButtons(),
			},
		},
	}
}

// Dependent clears the answer whenever the question changes and asks for a
// date when the question is about a birthday.
func Dependent() model.Form {
	form := Login()
	form.ID = DependentID
	form.Title = "Setting Field Values"
	form.Description = "Reset one field when another changes."
	form.Pages[1].Fields = questionFields(true)
	return form
}

// Progress is Dependent with the page progress indicator on every page.
func Progress() model.Form {
	form := Dependent()
	form.ID = ProgressID
	form.Title = "Page Progress Display"
	form.Description = "Show which page the user is on."
	for i := range form.Pages {
		form.Pages[i].Progress = true
	}
	return form
}

// Invitees collects a growing list of people. The first person cannot be
// removed.
func Invitees() model.Form {
	return model.Form{
		ID:          InviteesID,
		Title:       "Dynamic Fields",
		Description: "Add and remove repeated groups of fields.",
		Initial: model.Values{
			"invitees": []any{map[string]any{"name": "", "email": ""}},
			"message":  "",
		},
		Pages: []model.Page{{
			Name: "invite",
			Fields: []model.Field{
				{
					Name:      "invitees",
					Kind:      model.KindArray,
					ItemLabel: "Person %d",
					Item: []model.Field{
						{Name: "name", Kind: model.KindText},
						{Name: "email", Kind: model.KindEmail, Placeholder: "Email"},
					},
				},
				{Name: "message", Kind: model.KindTextarea, Placeholder: "Message"},
			},
			Buttons: []model.Button{
				{Label: "+ Add Invitees", Role: model.RolePush, Target: "invitees", Style: "green"},
				{Label: "Submit", Role: model.RoleSubmit, Style: "green"},
			},
		}},
	}
}
