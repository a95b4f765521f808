package schema

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/osvaldoandrade/datasetdb/internal/app/dataset"
)

// baseSchemaJSON is the structural contract for submitted dataset documents.
// The complete variant is derived from it at init by copy-and-extend; the two
// compiled schemas are immutable and shared across calls.
const baseSchemaJSON = `{
	"type": "object",
	"properties": {
		"name": {
			"type": "string",
			"minLength": 1,
			"maxLength": 100
		},
		"description": {"type": ["string", "null"]},
		"public": {"type": "boolean"},
		"classes": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"name": {
						"type": "string",
						"minLength": 1,
						"maxLength": 100
					},
					"description": {"type": ["string", "null"]},
					"recordings": {
						"type": "array",
						"items": {
							"type": "string",
							"pattern": "^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$"
						}
					}
				},
				"required": ["name", "recordings"]
			}
		}
	},
	"required": ["name", "classes", "public"]
}`

var baseSchema = jsonschema.MustCompileString("dataset-base.json", baseSchemaJSON)
var completeSchema = jsonschema.MustCompileString("dataset-complete.json", completeSchemaJSON())

// completeSchemaJSON extends the base schema with the minimum class and
// recording counts required for downstream processing: at least two classes,
// each with at least two recordings.
func completeSchemaJSON() string {
	var schema map[string]any
	if err := json.Unmarshal([]byte(baseSchemaJSON), &schema); err != nil {
		panic(fmt.Sprintf("decode base schema: %v", err))
	}

	classes := schema["properties"].(map[string]any)["classes"].(map[string]any)
	classes["minItems"] = 2
	items := classes["items"].(map[string]any)
	recordings := items["properties"].(map[string]any)["recordings"].(map[string]any)
	recordings["minItems"] = 2

	out, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("encode complete schema: %v", err))
	}
	return string(out)
}

type JSONSchemaValidator struct{}

func (JSONSchemaValidator) Validate(ctx context.Context, document []byte, variant dataset.SchemaVariant) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	compiled := baseSchema
	if variant == dataset.SchemaComplete {
		compiled = completeSchema
	}

	var instance any
	if err := json.Unmarshal(document, &instance); err != nil {
		return fmt.Errorf("%w: %v", dataset.ErrInvalidDocument, err)
	}
	if err := compiled.Validate(instance); err != nil {
		return fmt.Errorf("%w: %v", dataset.ErrInvalidDocument, err)
	}
	return nil
}
