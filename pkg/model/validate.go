package model

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the structural consistency of a form definition: unique
// field names, array fields with a record shape, buttons pointing at real
// arrays, and reset/kind switches referencing known fields. All problems are
// joined into a single error.
func (f Form) Validate() error {
	var errs []error
	if strings.TrimSpace(f.ID) == "" {
		errs = append(errs, errors.New("form id is required"))
	}
	if len(f.Pages) == 0 {
		errs = append(errs, errors.New("form needs at least one page"))
	}

	seen := make(map[string]struct{})
	for _, field := range f.Fields() {
		if strings.TrimSpace(field.Name) == "" {
			errs = append(errs, errors.New("field name is required"))
			continue
		}
		if _, dup := seen[field.Name]; dup {
			errs = append(errs, fmt.Errorf("field %q declared twice", field.Name))
		}
		seen[field.Name] = struct{}{}
	}

	for pageIdx, page := range f.Pages {
		for _, field := range page.Fields {
			errs = append(errs, validateField(field, seen)...)
		}
		for btnIdx, button := range page.Buttons {
			if button.Role != RolePush {
				continue
			}
			target, ok := f.Field(button.Target)
			if !ok || target.Kind != KindArray {
				errs = append(errs, fmt.Errorf("page %d button %d: push target %q is not an array field", pageIdx, btnIdx, button.Target))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("model: invalid form %q: %w", f.ID, errors.Join(errs...))
}

func validateField(field Field, known map[string]struct{}) []error {
	var errs []error
	switch field.Kind {
	case KindArray:
		if len(field.Item) == 0 {
			errs = append(errs, fmt.Errorf("array field %q has no item fields", field.Name))
		}
	case KindSelect:
		if len(field.Options) == 0 {
			errs = append(errs, fmt.Errorf("select field %q has no options", field.Name))
		}
	}
	for _, reset := range field.Resets {
		if _, ok := known[reset]; !ok {
			errs = append(errs, fmt.Errorf("field %q resets unknown field %q", field.Name, reset))
		}
	}
	if field.KindWhen != nil {
		if _, ok := known[field.KindWhen.Field]; !ok {
			errs = append(errs, fmt.Errorf("field %q switches on unknown field %q", field.Name, field.KindWhen.Field))
		}
	}
	return errs
}
