package tool

import (
	"encoding/json"
	"math"
)

// ParamType is the JSON Schema type of a single tool parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
)

// TypeOf maps a Go default value to its schema type. The mapping is
// conservative and total: anything that is not a bool, integer, or
// float degrades to string rather than erroring.
func TypeOf(v any) ParamType {
	switch v.(type) {
	case bool:
		return TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInteger
	case float32, float64:
		return TypeNumber
	default:
		return TypeString
	}
}

// accepts reports whether a decoded JSON value matches the parameter
// type. JSON numbers decode as float64, so integers are floats with an
// integral value.
func (t ParamType) accepts(v any) bool {
	switch t {
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeInteger:
		f, ok := v.(float64)
		return ok && f == math.Trunc(f)
	case TypeNumber:
		_, ok := v.(float64)
		return ok
	default:
		_, ok := v.(string)
		return ok
	}
}

// Param is one declared tool parameter.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Default     any
	Required    bool
}

// Schema is an explicit input descriptor built at registration time.
// It renders as a JSON Schema object with per-parameter type/default
// and a required list.
type Schema struct {
	params []Param
}

// NewSchema returns an empty schema builder.
func NewSchema() *Schema {
	return &Schema{}
}

// Required adds a parameter with no default. Chainable.
func (s *Schema) Required(name string, t ParamType, description string) *Schema {
	s.params = append(s.params, Param{Name: name, Type: t, Description: description, Required: true})
	return s
}

// Optional adds a parameter carrying a default value. The declared
// type is derived from the default via TypeOf, so it can never
// disagree with it. Chainable.
func (s *Schema) Optional(name, description string, def any) *Schema {
	s.params = append(s.params, Param{Name: name, Type: TypeOf(def), Description: description, Default: def})
	return s
}

// Params returns the declared parameters in declaration order.
func (s *Schema) Params() []Param {
	return s.params
}

func (s *Schema) param(name string) (Param, bool) {
	for _, p := range s.params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

type paramJSON struct {
	Type        ParamType `json:"type"`
	Description string    `json:"description,omitempty"`
	Default     any       `json:"default,omitempty"`
}

type schemaJSON struct {
	Type       string               `json:"type"`
	Properties map[string]paramJSON `json:"properties"`
	Required   []string             `json:"required,omitempty"`
}

// MarshalJSON renders the schema as a JSON Schema object. A schema
// with zero parameters still renders as an empty object schema; the
// "omit the schema entirely" case is a nil *Schema on the descriptor,
// not an empty one.
func (s *Schema) MarshalJSON() ([]byte, error) {
	out := schemaJSON{
		Type:       "object",
		Properties: make(map[string]paramJSON, len(s.params)),
	}
	for _, p := range s.params {
		out.Properties[p.Name] = paramJSON{
			Type:        p.Type,
			Description: p.Description,
			Default:     p.Default,
		}
		if p.Required {
			out.Required = append(out.Required, p.Name)
		}
	}
	return json.Marshal(out)
}
