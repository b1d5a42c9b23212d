package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const OrderPlacedSchemaTextV1 = `{
	"type": "record",
	"namespace": "pharmacy.orders",
	"name": "order_placed",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "session_id", "type": "string"},
		{"name": "status", "type": "string"},
		{"name": "total", "type": "double"},
		{"name": "shipping_address", "type": "string"},
		{"name": "tracking_number", "type": "string"},
		{"name": "placed_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
		{"name": "items", "type": {"type": "array", "items": {
			"type": "record",
			"name": "order_item",
			"fields": [
				{"name": "product_id", "type": "string"},
				{"name": "name", "type": "string"},
				{"name": "quantity", "type": "int"},
				{"name": "price", "type": "double"},
				{"name": "prescription", "type": "boolean"}
			]
		}}}
	]
}`

type (
	OrderPlacedV1 struct {
		OrderID         string        `avro:"order_id"`
		SessionID       string        `avro:"session_id"`
		Status          string        `avro:"status"`
		Total           float64       `avro:"total"`
		ShippingAddress string        `avro:"shipping_address"`
		TrackingNumber  string        `avro:"tracking_number"`
		PlacedAt        time.Time     `avro:"placed_at"`
		Items           []OrderItemV1 `avro:"items"`
	}

	OrderItemV1 struct {
		ProductID    string  `avro:"product_id"`
		Name         string  `avro:"name"`
		Quantity     int     `avro:"quantity"`
		Price        float64 `avro:"price"`
		Prescription bool    `avro:"prescription"`
	}
)

// OrderPlacedV1Avro panics when the schema text does not parse.
func OrderPlacedV1Avro() avro.Schema {
	return avro.MustParse(OrderPlacedSchemaTextV1)
}
