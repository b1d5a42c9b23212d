package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const SearchQuerySchemaTextV1 = `{
	"type": "record",
	"namespace": "pharmacy.search",
	"name": "search_query",
	"fields": [
		{"name": "session_id", "type": "string"},
		{"name": "query", "type": "string"},
		{"name": "searching", "type": "boolean"},
		{"name": "emitted_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type SearchQueryV1 struct {
	SessionID string    `avro:"session_id"`
	Query     string    `avro:"query"`
	Searching bool      `avro:"searching"`
	EmittedAt time.Time `avro:"emitted_at"`
}

func SearchQueryV1Avro() avro.Schema {
	return avro.MustParse(SearchQuerySchemaTextV1)
}
