package httpapi

import (
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// generationRequestSchema is the JSON Schema for the body of
// POST /v1/generation.
const generationRequestSchema = `{
  "type": "object",
  "required": ["numSets", "itemsPerSet", "overlapThreshold"],
  "properties": {
    "numSets": { "type": "integer", "minimum": 1, "maximum": 10000 },
    "itemsPerSet": { "type": "integer", "minimum": 1, "maximum": 100 },
    "overlapThreshold": { "type": "number", "minimum": 0, "maximum": 1 }
  },
  "additionalProperties": false
}`

var (
	schemaOnce sync.Once
	schemaErr  error
	compiled   *jsonschema.Schema
)

func generationSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiled, schemaErr = jsonschema.CompileString("generation_request.json", generationRequestSchema)
	})
	return compiled, schemaErr
}

// validateGenerationRequest checks payload (already unmarshalled into an
// any via encoding/json) against generationRequestSchema.
func validateGenerationRequest(payload any) error {
	schema, err := generationSchema()
	if err != nil {
		return err
	}
	return schema.Validate(payload)
}
