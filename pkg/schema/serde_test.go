package schema_test

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/pharmacy/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, schemaText string,
) (int, error) {
	args := c.Called(ctx, subject, schemaText)
	return args.Int(0), args.Error(1)
}

func testOrder() schema.OrderPlacedV1 {
	return schema.OrderPlacedV1{
		OrderID:         "ORDABC123XYZ",
		SessionID:       "sess-1",
		Status:          "pending",
		Total:           34.53,
		ShippingAddress: "123 Main St, Anytown, CA 12345",
		TrackingNumber:  "TRKABC123XYZ",
		PlacedAt:        time.UnixMilli(1_760_000_000_000).UTC(),
		Items: []schema.OrderItemV1{
			{ProductID: "1", Name: "Ibuprofen 200mg", Quantity: 2, Price: 12.99},
		},
	}
}

func TestSerdeOrderPlacedV1(t *testing.T) {
	const subject = "pharmacy-orders-value"

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeOrderPlacedV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("InvalidOpt", func(t *testing.T) {
		_, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.Error(t, err)
	})

	t.Run("IdentifierFails", func(t *testing.T) {
		identifier := new(MockSchemaIdentifier)
		identifier.On(
			"DetermineID", t.Context(), subject, schema.OrderPlacedSchemaTextV1,
		).Return(0, errors.New("registry unavailable"))

		_, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(identifier),
		)
		require.Error(t, err)
		identifier.AssertExpectations(t)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		const schemaID = 7
		identifier := new(MockSchemaIdentifier)
		identifier.On(
			"DetermineID", t.Context(), subject, schema.OrderPlacedSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(identifier),
		)
		require.NoError(t, err)

		want := testOrder()
		data, err := serde.Encode(want)
		require.NoError(t, err)

		require.Greater(t, len(data), 5)
		assert.Equal(t, byte(0), data[0])
		assert.Equal(t, uint32(schemaID), binary.BigEndian.Uint32(data[1:5]))

		var got schema.OrderPlacedV1
		require.NoError(t, serde.Decode(data, &got))

		assert.True(t, want.PlacedAt.Equal(got.PlacedAt))
		got.PlacedAt = want.PlacedAt
		assert.Equal(t, want, got)
	})
}

func TestSerdeSearchQueryV1(t *testing.T) {
	const subject = "pharmacy-search-queries-value"

	identifier := new(MockSchemaIdentifier)
	identifier.On(
		"DetermineID", t.Context(), subject, schema.SearchQuerySchemaTextV1,
	).Return(3, nil)

	serde, err := schema.NewSerdeSearchQueryV1(
		t.Context(),
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(identifier),
	)
	require.NoError(t, err)

	want := schema.SearchQueryV1{
		SessionID: "sess-1",
		Query:     "vitamin",
		Searching: true,
		EmittedAt: time.UnixMilli(1_760_000_000_000).UTC(),
	}
	data, err := serde.Encode(want)
	require.NoError(t, err)

	var got schema.SearchQueryV1
	require.NoError(t, serde.Decode(data, &got))
	assert.Equal(t, want.Query, got.Query)
	assert.Equal(t, want.Searching, got.Searching)
	assert.True(t, want.EmittedAt.Equal(got.EmittedAt))
}

func TestSchemasParse(t *testing.T) {
	assert.NotPanics(t, func() { schema.OrderPlacedV1Avro() })
	assert.NotPanics(t, func() { schema.SearchQueryV1Avro() })
	assert.Equal(t, "orders-value", schema.SubjectName("orders"))
}

func TestAvroFns(t *testing.T) {
	s := schema.SearchQueryV1Avro()
	encode, decode := schema.AvroEncodeFn(s), schema.AvroDecodeFn(s)

	data, err := encode(schema.SearchQueryV1{Query: "ibu"})
	require.NoError(t, err)

	var got schema.SearchQueryV1
	require.NoError(t, decode(data, &got))
	assert.Equal(t, "ibu", got.Query)
	assert.False(t, got.Searching)
}
