package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrIndexGap is returned by Set when an index skips past the end of a list.
var ErrIndexGap = errors.New("index past end of list")

// Values holds the current value of every field keyed by name.
type Values map[string]any

// Clone deep copies nested maps and slices so callers can hand values to
// renderers or submit handlers without sharing state.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = deepCopy(value)
	}
	return out
}

// String returns the value at path formatted as a string. Missing values and
// nil render as "".
func (v Values) String(path string) string {
	raw, ok := v.Get(path)
	if !ok || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprint(raw)
}

// Records returns the records of an array field. Non-array values yield nil.
func (v Values) Records(path string) []map[string]any {
	raw, ok := v.Get(path)
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		record, _ := item.(map[string]any)
		if record == nil {
			record = map[string]any{}
		}
		out = append(out, record)
	}
	return out
}

// Get resolves a dotted path. Numeric segments index into slices.
func (v Values) Get(path string) (any, bool) {
	if v == nil || path == "" {
		return nil, false
	}
	var current any = map[string]any(v)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set writes a value at a dotted path, creating intermediate records as
// needed. A list index may address an existing element or append one; larger
// indexes fail with ErrIndexGap.
func (v Values) Set(path string, value any) error {
	if v == nil {
		return fmt.Errorf("model: values are nil")
	}
	if path == "" {
		return fmt.Errorf("model: empty path")
	}
	segments := strings.Split(path, ".")
	updated, err := setSegment(map[string]any(v), segments, value)
	if err != nil {
		return fmt.Errorf("model: set %q: %w", path, err)
	}
	root := updated.(map[string]any)
	for key, val := range root {
		v[key] = val
	}
	return nil
}

func setSegment(node any, segments []string, value any) (any, error) {
	segment := segments[0]
	last := len(segments) == 1

	if idx, err := strconv.Atoi(segment); err == nil {
		if idx < 0 {
			return nil, fmt.Errorf("negative index %d", idx)
		}
		list, _ := node.([]any)
		if node != nil && list == nil {
			return nil, fmt.Errorf("segment %q indexes a non-list value", segment)
		}
		if idx > len(list) {
			return nil, fmt.Errorf("%w: %d with %d elements", ErrIndexGap, idx, len(list))
		}
		if idx == len(list) {
			list = append(list, nil)
		}
		if last {
			list[idx] = value
			return list, nil
		}
		child, err := setSegment(list[idx], segments[1:], value)
		if err != nil {
			return nil, err
		}
		list[idx] = child
		return list, nil
	}

	record, _ := node.(map[string]any)
	if node != nil && record == nil {
		return nil, fmt.Errorf("segment %q addresses a non-record value", segment)
	}
	if record == nil {
		record = make(map[string]any)
	}
	if last {
		record[segment] = value
		return record, nil
	}
	child, err := setSegment(record[segment], segments[1:], value)
	if err != nil {
		return nil, err
	}
	record[segment] = child
	return record, nil
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case Values:
		return map[string]any(typed.Clone())
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []map[string]any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}
