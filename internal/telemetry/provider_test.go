package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// keepGlobals restores the process-wide tracer provider and propagator.
func keepGlobals(t *testing.T) {
	t.Helper()
	tp := otel.GetTracerProvider()
	prop := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(prop)
	})
}

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	keepGlobals(t)
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.Same(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupWithEndpoint(t *testing.T) {
	keepGlobals(t)

	shutdown, err := Setup(context.Background(), "http://127.0.0.1:4318")
	require.NoError(t, err)
	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	assert.IsType(t, propagation.TraceContext{}, otel.GetTextMapPropagator())
	// Nothing was exported, so shutdown has nothing to flush.
	assert.NoError(t, shutdown(context.Background()))
}
