// Package progress maps a page count and the current page number to the
// segments of a step indicator (a numbered bubble plus an optional connector
// line per page). It holds no state; renderers recompute segments on every
// render from the page index supplied by the form controller.
package progress
