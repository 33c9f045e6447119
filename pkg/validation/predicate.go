package validation

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-formalise/pkg/model"
)

// Equals passes when the field's string value equals want.
func Equals(field, want string) model.Predicate {
	return func(values model.Values) bool {
		return values.String(field) == want
	}
}

// NotBlank passes when every named field holds non-whitespace text.
func NotBlank(fields ...string) model.Predicate {
	return func(values model.Values) bool {
		for _, field := range fields {
			if strings.TrimSpace(values.String(field)) == "" {
				return false
			}
		}
		return true
	}
}

// Matches passes when the field's string value matches pattern.
func Matches(field string, pattern *regexp.Regexp) model.Predicate {
	return func(values model.Values) bool {
		return pattern != nil && pattern.MatchString(values.String(field))
	}
}

// All passes when every predicate passes. An empty list passes.
func All(predicates ...model.Predicate) model.Predicate {
	return func(values model.Values) bool {
		for _, p := range predicates {
			if p != nil && !p(values) {
				return false
			}
		}
		return true
	}
}

// Any passes when at least one predicate passes. An empty list fails.
func Any(predicates ...model.Predicate) model.Predicate {
	return func(values model.Values) bool {
		for _, p := range predicates {
			if p != nil && p(values) {
				return true
			}
		}
		return false
	}
}

// Not negates a predicate.
func Not(predicate model.Predicate) model.Predicate {
	return func(values model.Values) bool {
		return !predicate(values)
	}
}

// Gate pairs a predicate with the message shown when it fails.
func Gate(check model.Predicate, message string) *model.Gate {
	return &model.Gate{Check: check, Message: message}
}
