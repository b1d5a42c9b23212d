package kafka_test

import (
	"testing"

	"github.com/lovoo/goka"
	"github.com/lovoo/goka/tester"
	"github.com/niksmo/pharmacy/internal/adapter/kafka"
	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/niksmo/pharmacy/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQueryEmitter(t *testing.T) {
	const topic = "pharmacy-search-queries"
	gkt := tester.New(t)

	e, err := kafka.NewSearchQueryEmitter(
		kafka.EmitterClientOpt(kafka.ClientConfig{
			SeedBrokers: []string{"localhost:9092"},
			Topic:       topic,
		}),
		kafka.EmitterSerdeOpt(kafka.NewAvroSerde(schema.SearchQueryV1Avro())),
		kafka.EmitterGokaOpt(goka.WithEmitterTester(gkt)),
	)
	require.NoError(t, err)
	defer e.Close()

	tracker := gkt.NewQueueTracker(topic)

	e.EmitQuery("sess-1", domain.SearchState{Query: "vitamin", Searching: true})

	key, value, ok := tracker.Next()
	require.True(t, ok)
	assert.Equal(t, "sess-1", key)

	got, ok := value.(schema.SearchQueryV1)
	require.True(t, ok)
	assert.Equal(t, "vitamin", got.Query)
	assert.True(t, got.Searching)
	assert.Equal(t, "sess-1", got.SessionID)

	_, _, ok = tracker.Next()
	assert.False(t, ok)
}

func TestNewSearchQueryEmitterOpts(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = kafka.NewSearchQueryEmitter(
			kafka.EmitterSerdeOpt(kafka.NewAvroSerde(schema.SearchQueryV1Avro())),
		)
	})

	_, err := kafka.NewSearchQueryEmitter(kafka.EmitterClientOpt(kafka.ClientConfig{}))
	assert.Error(t, err)

	_, err = kafka.NewSearchQueryEmitter(kafka.EmitterSerdeOpt(nil))
	assert.Error(t, err)
}
