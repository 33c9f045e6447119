// Package site holds the documentation site shell: the YAML configuration
// (logo, project link, footer, title template, theme), the go-theme manifest
// built from it, and a holder that reloads the configuration when the file
// changes.
package site
