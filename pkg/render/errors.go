package render

import (
	"sort"
	"strings"
)

// MergeFormErrors concatenates and normalises multiple form-level message
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// SplitErrors separates form-level messages (empty key) from field messages
// and normalises both. Field keys use the dotted paths of the controller.
func SplitErrors(errs map[string][]string) (map[string][]string, []string) {
	if len(errs) == 0 {
		return nil, nil
	}
	fields := make(map[string][]string, len(errs))
	var formLevel []string

	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		messages := normalizeMessages(errs[key])
		if len(messages) == 0 {
			continue
		}
		path := strings.TrimSpace(key)
		if path == "" {
			formLevel = append(formLevel, messages...)
			continue
		}
		fields[path] = append(fields[path], messages...)
	}
	if len(fields) == 0 {
		fields = nil
	}
	return fields, normalizeMessages(formLevel)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
