package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formalise/pkg/model"
	pkgopenapi "github.com/goliatone/go-formalise/pkg/openapi"
)

// Issue is a single schema violation.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error collects the violations of one submission.
type Error struct {
	Form   string  `json:"form"`
	Issues []Issue `json:"issues"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return fmt.Sprintf("validation: form %q: %s", e.Form, strings.Join(parts, "; "))
}

// FieldErrors groups messages by dotted field path. Form-level messages use
// the empty key.
func (e *Error) FieldErrors() map[string][]string {
	out := make(map[string][]string, len(e.Issues))
	for _, issue := range e.Issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

// SchemaValidator validates submitted values against the schemas derived
// from form definitions.
type SchemaValidator struct {
	mu      sync.RWMutex
	schemas map[string]*openapi3.Schema
}

// NewSchemaValidator registers the schemas of the given forms.
func NewSchemaValidator(forms ...model.Form) *SchemaValidator {
	v := &SchemaValidator{schemas: make(map[string]*openapi3.Schema, len(forms))}
	for _, form := range forms {
		v.Register(form)
	}
	return v
}

// Register adds or replaces the schema of a form.
func (v *SchemaValidator) Register(form model.Form) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.schemas[form.ID] = pkgopenapi.SubmissionSchema(form)
}

// Validate checks values against the form's schema. It returns *Error when
// the values violate the schema.
func (v *SchemaValidator) Validate(formID string, values model.Values) error {
	v.mu.RLock()
	schema, ok := v.schemas[formID]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("validation: no schema registered for form %q", formID)
	}

	err := schema.VisitJSON(map[string]any(values.Clone()), openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	return &Error{Form: formID, Issues: issuesFromError(err)}
}

func issuesFromError(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Issue
		for _, nested := range multi {
			out = append(out, issuesFromError(nested)...)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []Issue{{
			Field:   strings.Join(schemaErr.JSONPointer(), "."),
			Message: strings.TrimSpace(schemaErr.Reason),
		}}
	}
	return []Issue{{Message: strings.TrimSpace(err.Error())}}
}
