package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formalise/pkg/model"
)

// Reserved request keys used by HTML renderers and the HTTP handler.
const (
	PageKey   = "_page"
	ActionKey = "_action"
)

// HiddenField represents a hidden input emitted alongside the visible page.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		if _, seen := clean[key]; !seen {
			names = append(names, key)
		}
		clean[key] = value
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}

// CarryFields returns hidden inputs for every declared field that is not
// shown on the given page, so a stateless round trip keeps earlier answers.
// Array fields are flattened to dotted paths such as "invitees.0.name".
func CarryFields(def model.Form, page int, values model.Values) []HiddenField {
	visible := make(map[string]struct{})
	if page >= 0 && page < len(def.Pages) {
		for _, field := range def.Pages[page].Fields {
			visible[field.Name] = struct{}{}
		}
	}

	var out []HiddenField
	for i, p := range def.Pages {
		if i == page {
			continue
		}
		for _, field := range p.Fields {
			if _, shown := visible[field.Name]; shown {
				continue
			}
			out = append(out, flatten(field, values)...)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func flatten(field model.Field, values model.Values) []HiddenField {
	if field.Kind != model.KindArray {
		raw, ok := values[field.Name]
		if !ok || raw == nil {
			return nil
		}
		return []HiddenField{Hidden(field.Name, raw)}
	}

	var out []HiddenField
	for index, record := range values.Records(field.Name) {
		prefix := field.Name + "." + strconv.Itoa(index)
		for _, item := range field.Item {
			value, ok := record[item.Name]
			if !ok || value == nil {
				value = ""
			}
			out = append(out, Hidden(prefix+"."+item.Name, value))
		}
	}
	return out
}
