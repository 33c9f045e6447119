package vanilla

// ChromeClass is a typed identifier for semantic CSS classes emitted by the
// templates.
type ChromeClass string

const (
	ClassForm     ChromeClass = "fl-form"
	ClassHeader   ChromeClass = "fl-header"
	ClassProgress ChromeClass = "fl-progress"
	ClassField    ChromeClass = "fl-field"
	ClassArray    ChromeClass = "fl-array"
	ClassActions  ChromeClass = "fl-actions"
	ClassMessage  ChromeClass = "fl-message"
)

// Classes lets callers add their own classes next to the defaults.
type Classes struct {
	Form    string `json:"form"`
	Header  string `json:"header"`
	Field   string `json:"field"`
	Actions string `json:"actions"`
}

func (c Classes) resolve() Classes {
	return Classes{
		Form:    join(string(ClassForm), c.Form),
		Header:  join(string(ClassHeader), c.Header),
		Field:   join(string(ClassField), c.Field),
		Actions: join(string(ClassActions), c.Actions),
	}
}

func join(base, extra string) string {
	if extra == "" {
		return base
	}
	return base + " " + extra
}
