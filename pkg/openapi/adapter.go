// Package openapi builds FormSpecs from OpenAPI operations, so a survey can
// be sourced from an API contract: the operation's request body schema maps
// onto a single-section questionnaire.
package openapi

import (
	"context"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-surveyform/pkg/model"
)

// BuildFormSpec loads an OpenAPI document and converts the identified
// operation's JSON request body into a FormSpec. Scalar properties become
// questions: strings map to text (or select when enumerated), booleans to
// checkboxes, numbers to number inputs. Nested objects and arrays are
// skipped; answers are flat key/value pairs.
func BuildFormSpec(ctx context.Context, data []byte, operationID string) (model.FormSpec, error) {
	if ctx == nil {
		return model.FormSpec{}, fmt.Errorf("openapi: context is required")
	}
	if operationID == "" {
		return model.FormSpec{}, fmt.Errorf("openapi: operation id is required")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return model.FormSpec{}, fmt.Errorf("openapi: load document: %w", err)
	}

	op, summary, err := findOperation(doc, operationID)
	if err != nil {
		return model.FormSpec{}, err
	}

	schema, err := requestSchema(op)
	if err != nil {
		return model.FormSpec{}, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}

	title := summary
	if title == "" {
		title = operationID
	}

	section := model.Section{Title: title}
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := buildField(name, ref.Value, required[name])
		if !ok {
			continue
		}
		section.Fields = append(section.Fields, field)
	}

	spec := model.FormSpec{
		ID:       operationID,
		Title:    title,
		Sections: []model.Section{section},
	}
	if err := model.Validate(spec); err != nil {
		return model.FormSpec{}, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}
	return spec, nil
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, string, error) {
	if doc.Paths == nil {
		return nil, "", fmt.Errorf("openapi: document has no paths")
	}
	for _, item := range doc.Paths.Map() {
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op, op.Summary, nil
			}
		}
	}
	return nil, "", fmt.Errorf("openapi: operation %q not found", operationID)
}

func requestSchema(op *openapi3.Operation) (*openapi3.Schema, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, fmt.Errorf("request body is required")
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("json request schema is required")
	}
	schema := media.Schema.Value
	if schema.Type != nil && !schema.Type.Is(openapi3.TypeObject) {
		return nil, fmt.Errorf("request schema must be an object")
	}
	return schema, nil
}

func buildField(name string, schema *openapi3.Schema, required bool) (model.Field, bool) {
	label := schema.Title
	if label == "" {
		label = name
	}

	field := model.Field{
		Key:      name,
		Label:    label,
		Required: required,
		Help:     schema.Description,
	}

	switch {
	case schema.Type.Is(openapi3.TypeString):
		if len(schema.Enum) > 0 {
			field.Kind = model.FieldKindSelect
			field.Options = enumOptions(schema.Enum)
		} else if schema.Format == "date" {
			field.Kind = model.FieldKindDate
		} else {
			field.Kind = model.FieldKindText
		}
	case schema.Type.Is(openapi3.TypeBoolean):
		field.Kind = model.FieldKindCheckbox
	case schema.Type.Is(openapi3.TypeInteger), schema.Type.Is(openapi3.TypeNumber):
		field.Kind = model.FieldKindNumber
	default:
		return model.Field{}, false
	}

	return field, true
}

func enumOptions(enum []any) []string {
	options := make([]string, 0, len(enum)+1)
	options = append(options, "")
	for _, v := range enum {
		options = append(options, fmt.Sprint(v))
	}
	return options
}
