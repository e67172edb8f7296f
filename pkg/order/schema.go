package order

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	schemaOnce   sync.Once
	recordSchema *openapi3.Schema
)

// Schema returns the OpenAPI schema describing the serialized order: an
// array of objects with an optional string or numeric id and a required
// boolean locked flag.
func Schema() *openapi3.Schema {
	schemaOnce.Do(func() {
		item := openapi3.NewObjectSchema().
			WithProperty("id", openapi3.NewOneOfSchema(
				openapi3.NewStringSchema(),
				openapi3.NewFloat64Schema(),
			)).
			WithProperty("locked", openapi3.NewBoolSchema())
		item.Required = []string{"locked"}
		recordSchema = openapi3.NewArraySchema().WithItems(item)
	})
	return recordSchema
}

// Validate checks raw JSON against Schema.
func Validate(raw []byte) error {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if err := Schema().VisitJSON(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}
