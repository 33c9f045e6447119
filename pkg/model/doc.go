// Package model defines the declarative description of a multi-page form:
// pages, fields, buttons and initial values. Renderers and the form
// controller consume these types; they never mutate them.
//
// Field values are carried in Values, a plain map keyed by field name. Field
// arrays hold []any of map[string]any records and are addressed with dotted
// paths such as "invitees.1.email".
package model
