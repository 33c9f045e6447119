// Package orchestrator wires form lookup, controller state, theme selection
// and renderer choice into a single Generate call, for callers that render a
// page without running the HTTP server.
package orchestrator
