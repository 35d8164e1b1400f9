package answers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// validate checks raw JSON against the answer sheet schema.
func validate(raw []byte) error {
	schema, err := sheetValidator()
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", sheetSchemaName, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// sheetValidator compiles the sheet schema on first use.
func sheetValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants the same value shapes UnmarshalJSON produces,
		// so round-trip the Go map through JSON.
		defBytes, err := json.Marshal(sheetSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		url := fmt.Sprintf("schema://%s.json", sheetSchemaName)
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}
