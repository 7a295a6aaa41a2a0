package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/annel0/blockverse/internal/config"
)

func TestInitTelemetry_Disabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := InitTelemetry(context.Background(), config.TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider(), "Выключенная телеметрия не трогает глобальный провайдер")
}

func TestInstallProvider_RecordsSpans(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	recorder := tracetest.NewSpanRecorder()
	shutdown, err := installProvider(context.Background(), "blockverse-test", trace.WithSpanProcessor(recorder))
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "world.StreamingManager.Tick")
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "world.StreamingManager.Tick", spans[0].Name())
	assert.NoError(t, shutdown(context.Background()))
}
