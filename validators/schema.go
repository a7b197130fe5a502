package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/corralhq/corral"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// JSONSchema validates that a value conforms to a JSON Schema document. The
// schema is compiled once at construction; an invalid schema is a
// construction error, never a runtime failure.
//
// String values are decoded as JSON first; anything else (maps, lists,
// scalars from an already-decoded tree) is validated directly.
//
// Arguments:
//   - schema (required): the JSON Schema document, as JSON text
type JSONSchema struct {
	compiled *jsonschema.Schema
}

// NewJSONSchema is the constructor registered under "json-schema".
func NewJSONSchema(kwargs corral.Kwargs) (corral.Validation, error) {
	raw, err := requireKwarg(kwargs, "schema")
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("argument %q is not valid JSON: %w", "schema", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &JSONSchema{compiled: compiled}, nil
}

// Validate implements corral.Validation.
func (v *JSONSchema) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	instance := value
	if s, ok := value.(string); ok {
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return &corral.FailResult{
				ErrorMessage: fmt.Sprintf("Value is not valid JSON: %v.", err),
			}
		}
		instance = decoded
	}

	if err := v.compiled.Validate(instance); err != nil {
		return &corral.FailResult{
			ErrorMessage: fmt.Sprintf("Value does not conform to the schema: %v.", err),
		}
	}
	return &corral.PassResult{}
}
