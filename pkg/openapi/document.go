package openapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formalise/pkg/model"
)

// Info describes the generated document.
type Info struct {
	Title   string
	Version string
	// BasePath prefixes every submission path. Defaults to "/examples".
	BasePath string
}

// SchemaName returns the component name used for a form's payload schema.
func SchemaName(formID string) string {
	return strings.ReplaceAll(model.DefaultLabeler(formID), " ", "") + "Submission"
}

// Document builds an OpenAPI document with one POST operation per form and
// validates it before returning.
func Document(ctx context.Context, info Info, forms ...model.Form) (*openapi3.T, error) {
	if info.Title == "" {
		info.Title = "Formalise examples"
	}
	if info.Version == "" {
		info.Version = "1.0.0"
	}
	base := strings.TrimRight(info.BasePath, "/")
	if base == "" {
		base = "/examples"
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   info.Title,
			Version: info.Version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
	}

	receipt := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("form", openapi3.NewStringSchema()).
		WithProperty("createdAt", openapi3.NewDateTimeSchema())
	doc.Components.Schemas["SubmissionReceipt"] = openapi3.NewSchemaRef("", receipt)

	for _, form := range forms {
		name := SchemaName(form.ID)
		payload := SubmissionSchema(form)
		doc.Components.Schemas[name] = openapi3.NewSchemaRef("", payload)

		op := openapi3.NewOperation()
		op.OperationID = "submit" + strings.TrimSuffix(name, "Submission")
		op.Summary = fmt.Sprintf("Submit the %q example", form.Title)
		op.Tags = []string{"examples"}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/"+name, payload)),
		}
		op.Responses = openapi3.NewResponses(
			openapi3.WithStatus(http.StatusCreated, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Submission stored").
					WithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/SubmissionReceipt", receipt)),
			}),
			openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Values do not match the form schema"),
			}),
		)
		doc.Paths.Set(base+"/"+form.ID+"/submissions", &openapi3.PathItem{Post: op})
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: invalid document: %w", err)
	}
	return doc, nil
}
