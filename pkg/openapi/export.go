package openapi

import (
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/schema"
)

// Extension keys attached to exported properties.
const (
	ExtensionWidget   = "x-regform-widget"
	ExtensionMessages = "x-regform-messages"
)

// Export maps every field and rule of s onto an object schema. Rules with no
// OpenAPI counterpart (positive) are carried only in the messages extension.
func Export(s *schema.Schema) *openapi3.Schema {
	if s == nil {
		s = schema.New()
	}

	out := openapi3.NewObjectSchema()
	out.Title = "Registration"
	out.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}

	var required []string
	for _, field := range s.Fields() {
		prop, isRequired := exportField(field)
		out.WithProperty(field.Name, prop)
		if isRequired {
			required = append(required, field.Name)
		}
	}
	out.Required = required
	return out
}

// ExportDocument wraps the exported schema in a minimal OpenAPI document under
// components/schemas/Registration.
func ExportDocument(s *schema.Schema, version string) *openapi3.T {
	if strings.TrimSpace(version) == "" {
		version = "1.0.0"
	}
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "Registration form",
			Version: version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				ContractSchemaName: openapi3.NewSchemaRef("", Export(s)),
			},
		},
	}
}

func exportField(field schema.FieldRules) (*openapi3.Schema, bool) {
	var prop *openapi3.Schema
	switch field.Type {
	case schema.FieldTypeInteger:
		prop = openapi3.NewIntegerSchema()
	case schema.FieldTypeBoolean:
		prop = openapi3.NewBoolSchema()
	default:
		prop = openapi3.NewStringSchema()
	}
	prop.Title = field.Label

	messages := make(map[string]string, len(field.Rules))
	required := false
	for _, rule := range field.Rules {
		messages[rule.Kind] = rule.Message
		switch rule.Kind {
		case schema.RuleRequired:
			required = true
			if field.Type == schema.FieldTypeString {
				prop.WithMinLength(1)
			}
		case schema.RuleEmail:
			prop.WithFormat("email")
		case schema.RuleMinLength:
			if n, ok := intParam(rule); ok {
				prop.WithMinLength(n)
			}
		case schema.RuleMaxLength:
			if n, ok := intParam(rule); ok {
				prop.WithMaxLength(n)
			}
		case schema.RulePattern:
			prop.WithPattern(rule.Params["pattern"])
		case schema.RuleMin:
			if f, ok := floatParam(rule); ok {
				prop.WithMin(f)
			}
		case schema.RuleMax:
			if f, ok := floatParam(rule); ok {
				prop.WithMax(f)
			}
		case schema.RuleEnum:
			values := strings.Split(rule.Params["values"], ",")
			enum := make([]any, 0, len(values))
			for _, v := range values {
				enum = append(enum, v)
			}
			prop.WithEnum(enum...)
		case schema.RuleConst:
			required = true
			prop.WithEnum(true)
		}
	}

	if prop.Extensions == nil {
		prop.Extensions = make(map[string]any)
	}
	prop.Extensions[ExtensionWidget] = field.Widget
	prop.Extensions[ExtensionMessages] = messages
	return prop, required
}

func intParam(rule schema.Rule) (int64, bool) {
	n, err := strconv.ParseInt(rule.Params["value"], 10, 64)
	return n, err == nil
}

func floatParam(rule schema.Rule) (float64, bool) {
	f, err := strconv.ParseFloat(rule.Params["value"], 64)
	return f, err == nil
}
