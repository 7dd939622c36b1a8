package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/t2048.schema.json
var t2048SchemaJSON []byte

const t2048SchemaURL = "mem://schemas/t2048.json"

var (
	schemaOnce     sync.Once
	t2048Schema    *jsonschema.Schema
	t2048SchemaErr error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(t2048SchemaURL, bytes.NewReader(t2048SchemaJSON)); err != nil {
			t2048SchemaErr = fmt.Errorf("config: add schema resource: %w", err)
			return
		}
		t2048Schema, t2048SchemaErr = compiler.Compile(t2048SchemaURL)
		if t2048SchemaErr != nil {
			t2048SchemaErr = fmt.Errorf("config: compile schema: %w", t2048SchemaErr)
		}
	})
	return t2048Schema, t2048SchemaErr
}

// ValidateYAML checks a raw YAML document against the embedded schema.
// Unknown keys and out-of-range values are rejected before decoding.
func ValidateYAML(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	if doc == nil {
		return nil // empty document keeps every default
	}

	// Round-trip through JSON so numbers and maps have the shapes the
	// validator expects.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config: convert yaml: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var normalized any
	if err := dec.Decode(&normalized); err != nil {
		return fmt.Errorf("config: convert yaml: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("config: schema: %w", err)
	}
	return nil
}
