package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formalise/pkg/model"
)

// SubmissionSchema returns the object schema of a form's submitted values.
func SubmissionSchema(form model.Form) *openapi3.Schema {
	schema := objectSchema(form.Fields())
	schema.Title = form.Title
	schema.Description = form.Description
	return schema
}

func objectSchema(fields []model.Field) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for _, field := range fields {
		schema.WithProperty(field.Name, FieldSchema(field))
		if field.Required {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return schema
}

// FieldSchema maps a single field to its JSON schema. Kinds chosen at runtime
// through KindWhen keep the string type of the base kind.
func FieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Kind {
	case model.KindArray:
		schema = openapi3.NewArraySchema().WithItems(objectSchema(field.Item))
		if field.Required {
			schema.WithMinItems(1)
		}
	case model.KindSelect:
		schema = openapi3.NewStringSchema()
		enum := make([]any, 0, len(field.Options))
		for _, option := range field.Options {
			enum = append(enum, option.Value)
		}
		schema.WithEnum(enum...)
	default:
		schema = openapi3.NewStringSchema()
		if field.Required {
			schema.WithMinLength(1)
		}
	}
	schema.Title = field.DisplayLabel()
	if field.Kind == model.KindPassword {
		schema.WriteOnly = true
	}
	return schema
}
