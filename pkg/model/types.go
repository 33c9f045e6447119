package model

import (
	"fmt"
	"strings"
)

// Kind enumerates the controls a field can render as.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
	KindDate     Kind = "date"
	KindSelect   Kind = "select"
	KindTextarea Kind = "textarea"
	KindArray    Kind = "array"
)

// Role enumerates what a button does when pressed.
type Role string

const (
	// RoleContinue moves to the next page once the optional gate passes.
	RoleContinue Role = "continue"
	// RoleBack moves to the previous page.
	RoleBack Role = "back"
	// RoleSubmit hands the final values to the submit handler.
	RoleSubmit Role = "submit"
	// RolePush appends a blank record to the array named by Target.
	RolePush Role = "push"
)

// Predicate is a synchronous check over the current values.
type Predicate func(values Values) bool

// Gate guards a continue button. When Check returns false the page stays put
// and Message is shown to the user.
type Gate struct {
	Check   Predicate
	Message string
}

// Allows reports whether the gate lets the user through. A nil gate or a nil
// check always passes.
func (g *Gate) Allows(values Values) bool {
	if g == nil || g.Check == nil {
		return true
	}
	return g.Check(values)
}

// Option is a single choice of a select field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// KindSwitch picks a field kind from the value of another field, e.g. an
// answer rendered as a date picker when the question asks for a birthday.
type KindSwitch struct {
	Field   string          `json:"field"`
	Cases   map[string]Kind `json:"cases"`
	Default Kind            `json:"default"`
}

// Field describes one named value of the form.
type Field struct {
	Name        string      `json:"name"`
	Kind        Kind        `json:"kind"`
	Label       string      `json:"label,omitempty"`
	Placeholder string      `json:"placeholder,omitempty"`
	Required    bool        `json:"required,omitempty"`
	Options     []Option    `json:"options,omitempty"`
	KindWhen    *KindSwitch `json:"kindWhen,omitempty"`
	// Resets lists fields restored to their initial value whenever this field
	// changes.
	Resets []string `json:"resets,omitempty"`
	// Item is the record shape of an array field.
	Item []Field `json:"item,omitempty"`
	// ItemLabel is a format string receiving the 1-based record number, used
	// as the placeholder of the first item field ("Person %d").
	ItemLabel string `json:"itemLabel,omitempty"`
	// Pinned is the number of leading records that cannot be removed. Zero
	// means one.
	Pinned int `json:"pinned,omitempty"`
}

// Button is an action rendered at the bottom of a page.
type Button struct {
	Label  string `json:"label"`
	Role   Role   `json:"role"`
	Target string `json:"target,omitempty"`
	Style  string `json:"style,omitempty"`
	Gate   *Gate  `json:"-"`
}

// Page is one screen of the form.
type Page struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	// Intro is author supplied HTML shown above the fields. Renderers sanitise
	// it before output.
	Intro    string   `json:"intro,omitempty"`
	Progress bool     `json:"progress,omitempty"`
	Fields   []Field  `json:"fields"`
	Buttons  []Button `json:"buttons"`
}

// Form is the complete multi-page definition.
type Form struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Initial     Values `json:"initial"`
	Pages       []Page `json:"pages"`
}

// DisplayLabel returns the explicit label or one derived from the name.
func (f Field) DisplayLabel() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return DefaultLabeler(f.Name)
}

// ResolveKind applies KindWhen against the current values.
func (f Field) ResolveKind(values Values) Kind {
	if f.KindWhen == nil {
		return f.Kind
	}
	raw, _ := values.Get(f.KindWhen.Field)
	if kind, ok := f.KindWhen.Cases[fmt.Sprint(raw)]; ok && kind != "" {
		return kind
	}
	if f.KindWhen.Default != "" {
		return f.KindWhen.Default
	}
	return f.Kind
}

// PinnedCount returns how many leading records of an array are protected.
func (f Field) PinnedCount() int {
	if f.Pinned <= 0 {
		return 1
	}
	return f.Pinned
}

// ItemPlaceholder formats ItemLabel for a 0-based record index.
func (f Field) ItemPlaceholder(index int) string {
	if f.ItemLabel == "" {
		return ""
	}
	return fmt.Sprintf(f.ItemLabel, index+1)
}

// BlankRecord returns an empty record for an array field. Select item fields
// start on their first option so the record is immediately valid.
func (f Field) BlankRecord() map[string]any {
	record := make(map[string]any, len(f.Item))
	for _, item := range f.Item {
		if item.Kind == KindSelect && len(item.Options) > 0 {
			record[item.Name] = item.Options[0].Value
			continue
		}
		record[item.Name] = ""
	}
	return record
}

// DisplayTitle returns the page title, falling back to the humanised name.
func (p Page) DisplayTitle() string {
	if strings.TrimSpace(p.Title) != "" {
		return p.Title
	}
	return DefaultLabeler(p.Name)
}

// Field looks up a top-level field by name across all pages.
func (f Form) Field(name string) (Field, bool) {
	for _, page := range f.Pages {
		for _, field := range page.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return Field{}, false
}

// Fields returns every top-level field in page order.
func (f Form) Fields() []Field {
	var out []Field
	for _, page := range f.Pages {
		out = append(out, page.Fields...)
	}
	return out
}

// LastPage returns the 0-based index of the final page, or -1 for a form
// without pages.
func (f Form) LastPage() int {
	return len(f.Pages) - 1
}

// BlockedGate returns the first continue gate on pages before page that
// rejects values, along with the page holding it.
func (f Form) BlockedGate(values Values, before int) (int, *Gate, bool) {
	for index := 0; index < before && index < len(f.Pages); index++ {
		for _, button := range f.Pages[index].Buttons {
			if button.Role == RoleContinue && !button.Gate.Allows(values) {
				return index, button.Gate, true
			}
		}
	}
	return 0, nil, false
}
