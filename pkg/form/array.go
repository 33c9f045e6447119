package form

import (
	"fmt"

	"github.com/goliatone/go-formalise/pkg/model"
)

// Push appends a blank record to the array field name.
func (c *Controller) Push(name string) error {
	field, err := c.arrayField(name)
	if err != nil {
		return err
	}
	items, _ := c.values[name].([]any)
	c.values[name] = append(items, field.BlankRecord())
	return nil
}

// Delete removes the record at index from the array field name. Records below
// the field's pinned count cannot be removed.
func (c *Controller) Delete(name string, index int) error {
	field, err := c.arrayField(name)
	if err != nil {
		return err
	}
	items, _ := c.values[name].([]any)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, name, index)
	}
	if index < field.PinnedCount() {
		return fmt.Errorf("%w: %s[%d]", ErrPinnedRecord, name, index)
	}
	out := make([]any, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	c.values[name] = out
	return nil
}

// Removable reports whether the remove control should render for a record.
func Removable(field model.Field, index int) bool {
	return index >= field.PinnedCount()
}

func (c *Controller) arrayField(name string) (model.Field, error) {
	field, ok := c.form.Field(name)
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if field.Kind != model.KindArray {
		return model.Field{}, fmt.Errorf("%w: %q", ErrNotArray, name)
	}
	return field, nil
}
