package item

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed payload.schema.json
var payloadSchemaJSON []byte

const payloadSchemaURL = "item-payload.schema.json"

var payloadSchema = mustCompilePayloadSchema()

func mustCompilePayloadSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(payloadSchemaURL, bytes.NewReader(payloadSchemaJSON)); err != nil {
		panic("item: add payload schema: " + err.Error())
	}
	return compiler.MustCompile(payloadSchemaURL)
}

// Payload is the body accepted by create and update requests.
type Payload struct {
	Name string `json:"name"`
}

// ParsePayload decodes and validates a create/update request body.
// Malformed JSON, a non-object body, a missing name or a non-string name
// all yield a *ValidationError. Unknown fields are ignored.
func ParsePayload(body []byte) (Payload, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return Payload{}, &ValidationError{Message: "request body must be valid JSON: " + err.Error()}
	}

	if err := payloadSchema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return Payload{}, schemaError(verr)
		}
		return Payload{}, &ValidationError{Message: err.Error()}
	}

	// The schema guarantees an object with a string name.
	name, _ := doc.(map[string]any)["name"].(string)
	return Payload{Name: name}, nil
}

// schemaError reduces a schema failure to its first leaf cause.
func schemaError(err *jsonschema.ValidationError) *ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}

	field := strings.TrimPrefix(err.InstanceLocation, "/")
	field = strings.ReplaceAll(field, "/", ".")
	if field == "" && strings.HasSuffix(err.KeywordLocation, "/required") {
		// "missing properties: 'name'"
		if parts := strings.Split(err.Message, "'"); len(parts) > 1 {
			field = parts[1]
		}
	}
	return &ValidationError{Field: field, Message: err.Message}
}
