package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var ErrTooFewOpts = errors.New("too few options")

// A Serde frames Avro payloads with the registry wire header: a zero magic
// byte followed by the big-endian schema id.
type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

var _ Serde = (*sr.Serde)(nil)

type Opt func(*serdeOpts) error

type serdeOpts struct {
	subject    string
	identifier SchemaIdentifier
}

func SubjectOpt(subject string) Opt {
	return func(o *serdeOpts) error {
		if subject == "" {
			return errors.New("subject is empty string")
		}
		o.subject = subject
		return nil
	}
}

func SchemaIdentifierOpt(si SchemaIdentifier) Opt {
	return func(o *serdeOpts) error {
		if si == nil {
			return errors.New("schema identifier is nil")
		}
		o.identifier = si
		return nil
	}
}

// A record pairs a schema text with the Go type it is encoded from.
type record struct {
	text   string
	sample any
}

var (
	orderPlacedV1 = record{OrderPlacedSchemaTextV1, OrderPlacedV1{}}
	searchQueryV1 = record{SearchQuerySchemaTextV1, SearchQueryV1{}}
)

// NewSerdeOrderPlacedV1 needs SubjectOpt and SchemaIdentifierOpt.
func NewSerdeOrderPlacedV1(ctx context.Context, opts ...Opt) (Serde, error) {
	return orderPlacedV1.serde(ctx, "NewSerdeOrderPlacedV1", opts)
}

// NewSerdeSearchQueryV1 needs SubjectOpt and SchemaIdentifierOpt.
func NewSerdeSearchQueryV1(ctx context.Context, opts ...Opt) (Serde, error) {
	return searchQueryV1.serde(ctx, "NewSerdeSearchQueryV1", opts)
}

func (r record) serde(ctx context.Context, op string, opts []Opt) (Serde, error) {
	var o serdeOpts
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if o.subject == "" || o.identifier == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrTooFewOpts)
	}

	avroSchema, err := avro.Parse(r.text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := o.identifier.DetermineID(ctx, o.subject, r.text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := new(sr.Serde)
	s.Register(
		id,
		r.sample,
		sr.EncodeFn(AvroEncodeFn(avroSchema)),
		sr.DecodeFn(AvroDecodeFn(avroSchema)),
	)
	return s, nil
}
