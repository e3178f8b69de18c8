package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitWithoutExporter(t *testing.T) {
	tp, err := InitTracerProvider("test-service", "")
	require.NoError(t, err)
	defer tp.Shutdown(context.Background())

	assert.Empty(t, GetTraceIDFromContext(context.Background()))

	ctx, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	got := GetTraceIDFromContext(ctx)
	assert.Len(t, got, 32)
	assert.Equal(t, span.SpanContext().TraceID().String(), got)
}
