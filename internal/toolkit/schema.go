package toolkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaValidator compiles and caches JSON schemas, validating arbitrary
// payloads against them. Grounded on pkg/pluginsdk/validation.go's
// compileSchema + sync.Map cache idiom from the teacher repo.
type SchemaValidator struct {
	cache sync.Map // id + "\x00" + schema text -> *jsonschema.Schema
}

// NewSchemaValidator returns a ready-to-use validator.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{}
}

// Compile compiles (or returns the cached compilation of) a raw JSON
// schema document.
func (v *SchemaValidator) Compile(id string, schema json.RawMessage) (*jsonschema.Schema, error) {
	key := id + "\x00" + string(schema)
	if cached, ok := v.cache.Load(key); ok {
		if compiled, ok := cached.(*jsonschema.Schema); ok {
			return compiled, nil
		}
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(id, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("add schema resource %s: %w", id, err)
	}
	compiled, err := compiler.Compile(id)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", id, err)
	}
	v.cache.Store(key, compiled)
	return compiled, nil
}

// Validate compiles schema (if needed) and validates payload against it.
// payload must be a JSON-decodable document (map[string]any, []any, or a
// scalar) — callers typically round-trip through json.Marshal/Unmarshal
// first.
func (v *SchemaValidator) Validate(id string, schema json.RawMessage, payload any) error {
	compiled, err := v.Compile(id, schema)
	if err != nil {
		return err
	}
	return compiled.Validate(payload)
}

// ValidateJSON is a convenience wrapper that decodes raw JSON bytes
// before validating. The envelope and the planner decode their payloads
// themselves and call Validate / ValidatePlan instead.
func (v *SchemaValidator) ValidateJSON(id string, schema json.RawMessage, raw json.RawMessage) error {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decode payload for schema %s: %w", id, err)
	}
	return v.Validate(id, schema, decoded)
}
