// Package form drives a multi-page form defined by the model package. A
// Controller owns the current page index and field values, resolves button
// presses into explicit navigation actions and applies them. Page renderers
// receive everything they need through a PageContext value; nothing is read
// from package level state.
//
// Controllers are not safe for concurrent use. Stateless transports such as
// HTTP build a controller per request and call Restore with the state carried
// by the request.
package form
