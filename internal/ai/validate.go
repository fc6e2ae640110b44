package ai

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled definitions by schema name; lesson
// generation reuses the same handful of schemas for every request.
var compiledSchemas sync.Map // name → *jsonschema.Schema

// checkSchema verifies raw against the schema, wrapping every failure
// mode as *BadDraftError. A nil schema accepts anything.
func checkSchema(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &BadDraftError{Raw: raw, Cause: fmt.Errorf("not JSON: %w", err)}
	}

	compiled, err := compiledFor(schema)
	if err != nil {
		return &BadDraftError{Raw: raw, Cause: err}
	}

	if err := compiled.Validate(doc); err != nil {
		return &BadDraftError{Raw: raw, Cause: err}
	}
	return nil
}

func compiledFor(schema *Schema) (*jsonschema.Schema, error) {
	if hit, ok := compiledSchemas.Load(schema.Name); ok {
		return hit.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, so round-trip the
	// definition map through encoding/json first.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", schema.Name, err)
	}
	var doc any
	if err := json.Unmarshal(def, &doc); err != nil {
		return nil, fmt.Errorf("schema %q: %w", schema.Name, err)
	}

	compiler := jsonschema.NewCompiler()
	id := "escucha://" + schema.Name + ".json"
	if err := compiler.AddResource(id, doc); err != nil {
		return nil, fmt.Errorf("schema %q: %w", schema.Name, err)
	}
	compiled, err := compiler.Compile(id)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", schema.Name, err)
	}

	compiledSchemas.Store(schema.Name, compiled)
	return compiled, nil
}
