package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// JSONSchema represents a JSON Schema document
type JSONSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	AdditionalProperties *JSONSchema            `json:"additionalProperties,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	Enum                 []any                  `json:"enum,omitempty"`
	Minimum              *float64               `json:"minimum,omitempty"`
	Maximum              *float64               `json:"maximum,omitempty"`
	ExclusiveMinimum     *float64               `json:"exclusiveMinimum,omitempty"`
	MinItems             *int                   `json:"minItems,omitempty"`
}

const schemaRef = "https://json-schema.org/draft/2020-12/schema"

// Generator builds JSON schemas for YAML configuration structs. Property
// names come from yaml tags and constraints from validate tags.
type Generator struct {
	idPrefix string
}

func NewGenerator(idPrefix string) *Generator {
	return &Generator{idPrefix: strings.TrimSuffix(idPrefix, "/")}
}

// GenerateSchema generates a JSON schema from a Go type
func (g *Generator) GenerateSchema(t reflect.Type) (*JSONSchema, error) {
	s, err := g.schemaForType(t)
	if err != nil {
		return nil, err
	}

	s.Schema = schemaRef
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.Title = t.Name()
	if g.idPrefix != "" {
		s.ID = fmt.Sprintf("%s/%s", g.idPrefix, strings.ToLower(t.Name()))
	}
	return s, nil
}

// GenerateJSONSchema generates an indented JSON schema document for v.
func (g *Generator) GenerateJSONSchema(v any) (string, error) {
	s, err := g.GenerateSchema(reflect.TypeOf(v))
	if err != nil {
		return "", err
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(b), nil
}

func (g *Generator) schemaForType(t reflect.Type) (*JSONSchema, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		return g.structSchema(t)
	case reflect.Slice, reflect.Array:
		items, err := g.schemaForType(t.Elem())
		if err != nil {
			return nil, fmt.Errorf("failed to generate schema for array items: %w", err)
		}
		return &JSONSchema{Type: "array", Items: items}, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type: %s", t.Key().Kind())
		}
		values, err := g.schemaForType(t.Elem())
		if err != nil {
			return nil, fmt.Errorf("failed to generate schema for map values: %w", err)
		}
		return &JSONSchema{Type: "object", AdditionalProperties: values}, nil
	case reflect.String:
		return &JSONSchema{Type: "string"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &JSONSchema{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &JSONSchema{Type: "number"}, nil
	case reflect.Bool:
		return &JSONSchema{Type: "boolean"}, nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", t.Kind())
	}
}

func (g *Generator) structSchema(t reflect.Type) (*JSONSchema, error) {
	s := &JSONSchema{
		Type:       "object",
		Properties: make(map[string]*JSONSchema),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := fieldName(field)
		if name == "" {
			continue
		}

		fs, err := g.schemaForType(field.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to generate schema for field %s: %w", field.Name, err)
		}
		if desc := field.Tag.Get("description"); desc != "" {
			fs.Description = desc
		}

		if applyValidateTag(field.Tag.Get("validate"), fs) {
			s.Required = append(s.Required, name)
		}
		s.Properties[name] = fs
	}

	return s, nil
}

func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("yaml")
	if tag == "-" {
		return ""
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return strings.ToLower(field.Name)
	}
	return name
}

// applyValidateTag maps the validator rules that apply to the field itself
// onto s and reports whether the field is required. Rules after "dive"
// target the elements and are applied to the items or values schema.
func applyValidateTag(tag string, s *JSONSchema) bool {
	if tag == "" {
		return false
	}

	rules := strings.Split(tag, ",")
	target := s
	required := false
	for i, rule := range rules {
		if rule == "dive" {
			elem := s.Items
			if elem == nil {
				elem = s.AdditionalProperties
			}
			if elem != nil {
				applyValidateTag(strings.Join(rules[i+1:], ","), elem)
			}
			break
		}

		key, val, _ := strings.Cut(rule, "=")
		switch key {
		case "required":
			required = true
		case "oneof":
			for _, v := range strings.Fields(val) {
				target.Enum = append(target.Enum, v)
			}
		case "min":
			if n, err := strconv.Atoi(val); err == nil && target.Type == "array" {
				target.MinItems = &n
			}
		case "gte":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				target.Minimum = &f
			}
		case "lte":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				target.Maximum = &f
			}
		case "gt":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				target.ExclusiveMinimum = &f
			}
		}
	}
	return required
}
