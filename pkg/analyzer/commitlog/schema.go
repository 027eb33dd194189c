package commitlog

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed commitlog.schema.json
var schemaFS embed.FS

const schemaResource = "commitlog.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, doc); err != nil {
		return nil, fmt.Errorf("failed to register schema: %w", err)
	}
	return compiler.Compile(schemaResource)
})

// Validate checks that data is a JSON commit-history document matching the
// published schema.
func Validate(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("document does not match schema: %w", err)
	}
	return nil
}
