// Package template defines the template engine seam used by HTML renderers.
// Implementations live in subpackages so renderers depend only on the
// interface.
package template
