// Package schema holds the Avro records the storefront publishes and the
// Schema Registry serdes for them.
package schema

import (
	"context"

	"github.com/hamba/avro/v2"
)

// A SchemaIdentifier returns the registry id of a schema text under subject,
// registering it when needed.
type SchemaIdentifier interface {
	DetermineID(ctx context.Context, subject, schemaText string) (int, error)
}

func AvroEncodeFn(s avro.Schema) func(v any) ([]byte, error) {
	return func(v any) ([]byte, error) {
		return avro.Marshal(s, v)
	}
}

func AvroDecodeFn(s avro.Schema) func([]byte, any) error {
	return func(data []byte, v any) error {
		return avro.Unmarshal(s, data, v)
	}
}

// SubjectName follows the registry topic name strategy.
func SubjectName(topic string) string {
	return topic + "-value"
}
