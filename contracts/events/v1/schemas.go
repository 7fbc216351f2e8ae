// Package v1 holds the JSON schemas for paywall ledger event payloads.
package v1

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFS embed.FS

// Schema returns the raw schema for an event type.
func Schema(eventType string) ([]byte, error) {
	raw, err := schemaFS.ReadFile(eventType + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("no schema for event type %q", eventType)
	}
	return raw, nil
}

var compiled sync.Map // event type -> *gojsonschema.Schema

// CompiledSchema parses the schema for an event type on first use and
// returns the cached copy afterwards.
func CompiledSchema(eventType string) (*gojsonschema.Schema, error) {
	if cached, ok := compiled.Load(eventType); ok {
		return cached.(*gojsonschema.Schema), nil
	}
	raw, err := Schema(eventType)
	if err != nil {
		return nil, err
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", eventType, err)
	}
	actual, _ := compiled.LoadOrStore(eventType, schema)
	return actual.(*gojsonschema.Schema), nil
}

// ValidatePayload checks an envelope's data against its event type schema.
func ValidatePayload(eventType string, data []byte) error {
	schema, err := CompiledSchema(eventType)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate %s payload: %w", eventType, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("%s payload invalid: %s", eventType, strings.Join(problems, "; "))
	}
	return nil
}
