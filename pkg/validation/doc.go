// Package validation provides the typed checks used by multi-page forms:
// predicate combinators for continue gates and OpenAPI schema validation of
// submitted values.
package validation
