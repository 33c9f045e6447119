// Package openapi describes form submissions as an OpenAPI 3 document built
// with kin-openapi. Each form contributes a request body schema derived from
// its fields and a POST operation on its submission path. The same schemas
// back server-side payload validation in the validation package.
package openapi
