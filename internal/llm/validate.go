package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled definitions by their JSON text, so two
// schemas that share a name but differ in shape never collide.
var compiledSchemas = &schemaCache{byDef: map[string]*jsonschema.Schema{}}

type schemaCache struct {
	mu    sync.Mutex
	byDef map[string]*jsonschema.Schema
}

// validateResponse checks structured output against schema. A nil schema
// accepts anything. Failures are *ErrInvalidResponse carrying raw.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(format string, args ...any) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, args...)}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid("invalid JSON: %w", err)
	}
	compiled, err := compiledSchemas.get(schema)
	if err != nil {
		return invalid("compile schema %q: %w", schema.Name, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return invalid("schema validation failed: %w", err)
	}
	return nil
}

func (c *schemaCache) get(schema *Schema) (*jsonschema.Schema, error) {
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.byDef[string(def)]; ok {
		return s, nil
	}

	// The compiler takes decoded JSON, not the Go maps of the definition.
	decoded, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}
	url := "schema://" + schema.Name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, decoded); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := compiler.Compile(url)
	if err != nil {
		return nil, err
	}
	c.byDef[string(def)] = s
	return s, nil
}
