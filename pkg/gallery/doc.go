// Package gallery holds the example forms shown on the site.
//
// Every example is a plain model.Form; the HTTP server, the terminal wizard
// and the render command all run the same definitions.
package gallery
