package history

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/history.schema.json
var historySchemaJSON []byte

const historySchemaURL = "schema://sweetcatch/history.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// logSchema returns the compiled schema for the persisted round log.
func logSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(historySchemaJSON, &doc); err != nil {
			schemaErr = fmt.Errorf("history: parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(historySchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("history: add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(historySchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("history: compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// ValidateLog checks a serialized round log. It returns an error when raw is
// not JSON or does not match the log schema.
func ValidateLog(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("history: invalid JSON: %w", err)
	}
	schema, err := logSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("history: schema validation failed: %w", err)
	}
	return nil
}
