// Package kafka publishes storefront events: placed orders through franz-go
// and search queries through a goka emitter.
package kafka

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/hamba/avro/v2"
	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/niksmo/pharmacy/pkg/schema"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

// ClientConfig is shared by the producer and the emitter.
type ClientConfig struct {
	SeedBrokers []string
	Topic       string
	// TLS is nil for plaintext brokers.
	TLS *tls.Config
}

func (c ClientConfig) validate() error {
	if len(c.SeedBrokers) == 0 {
		return errors.New("seed brokers are empty")
	}
	if c.Topic == "" {
		return errors.New("topic is empty string")
	}
	return nil
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

type avroSerde struct {
	encode func(any) ([]byte, error)
	decode func([]byte, any) error
}

// NewAvroSerde encodes bare Avro without the registry header.
func NewAvroSerde(s avro.Schema) Serde {
	return avroSerde{
		encode: schema.AvroEncodeFn(s),
		decode: schema.AvroDecodeFn(s),
	}
}

func (s avroSerde) Encode(v any) ([]byte, error) {
	return s.encode(v)
}

func (s avroSerde) Decode(b []byte, v any) error {
	return s.decode(b, v)
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderToSchemaV1(
	sessionID string, o domain.Order,
) (s schema.OrderPlacedV1) {
	s.OrderID = o.ID
	s.SessionID = sessionID
	s.Status = string(o.Status)
	s.Total = o.Total.InexactFloat64()
	s.ShippingAddress = o.ShippingAddress
	s.TrackingNumber = o.TrackingNumber

	s.Items = make([]schema.OrderItemV1, len(o.Items))
	for i, item := range o.Items {
		s.Items[i] = schema.OrderItemV1{
			ProductID:    item.ID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			Price:        item.Price.InexactFloat64(),
			Prescription: item.Prescription,
		}
	}
	return
}
