package mq

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestKafkaHeaderCarrier(t *testing.T) {
	c := KafkaHeaderCarrier{}
	c.Set("traceparent", "a")
	c.Set("baggage", "b")
	c.Set("traceparent", "c")

	assert.Equal(t, "c", c.Get("traceparent"))
	assert.Equal(t, "", c.Get("missing"))
	assert.ElementsMatch(t, []string{"traceparent", "baggage"}, c.Keys())
	assert.Len(t, c, 2)
}

func TestCarrierPropagatesTraceContext(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "produce")
	defer span.End()

	prop := propagation.TraceContext{}
	headers := KafkaHeaderCarrier{}
	prop.Inject(ctx, &headers)
	assert.NotEmpty(t, headers.Get("traceparent"))

	extracted := prop.Extract(context.Background(), &headers)
	assert.Equal(t, span.SpanContext().TraceID(), spanTraceID(extracted))
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"k1:9092", "k2:9092"}, "order-link-issued")
	defer w.Close()
	assert.Equal(t, "order-link-issued", w.Topic)
	assert.NotNil(t, w.Addr)
	assert.Equal(t, int(kafka.RequireOne), int(w.RequiredAcks))
}

func spanTraceID(ctx context.Context) trace.TraceID {
	return trace.SpanContextFromContext(ctx).TraceID()
}
