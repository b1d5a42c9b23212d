package telemetry_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/niksmo/pharmacy/internal/adapter/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		shutdown, err := telemetry.Setup(t.Context(), telemetry.Config{})
		require.NoError(t, err)
		assert.NoError(t, shutdown(t.Context()))
	})

	t.Run("UnknownExporter", func(t *testing.T) {
		_, err := telemetry.Setup(t.Context(), telemetry.Config{Exporter: "zipkin"})
		assert.Error(t, err)
	})

	t.Run("Stdout", func(t *testing.T) {
		var buf bytes.Buffer
		shutdown, err := telemetry.Setup(t.Context(), telemetry.Config{
			Exporter:    telemetry.ExporterStdout,
			ServiceName: "pharmacy-test",
			Writer:      &buf,
		})
		require.NoError(t, err)

		_, span := otel.Tracer("test").Start(context.Background(), "checkout")
		span.End()

		require.NoError(t, shutdown(t.Context()))
		assert.Contains(t, buf.String(), "checkout")
		assert.Contains(t, buf.String(), "pharmacy-test")
	})
}
