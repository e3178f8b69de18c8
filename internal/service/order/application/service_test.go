package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"jhpcic/internal/service/order/domain"
	"jhpcic/internal/service/order/infrastructure"
)

type recordingPublisher struct {
	events []*domain.OrderLinkIssued
	err    error
}

func (p *recordingPublisher) PublishLinkIssued(_ context.Context, e *domain.OrderLinkIssued) error {
	p.events = append(p.events, e)
	return p.err
}

type failingKV struct{ err error }

func (f failingKV) Put(context.Context, string, []byte, time.Duration) error { return f.err }
func (f failingKV) Get(context.Context, string) ([]byte, error)              { return nil, f.err }

var fixedNow = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, kv *infrastructure.MemoryKV, pub *recordingPublisher) *OrderStoreService {
	t.Helper()
	bindings := infrastructure.NewBindings()
	if kv != nil {
		bindings.Bind("JHPCIC_STORE", kv)
	}
	return NewOrderStoreService(bindings, StoreConfig{Binding: "JHPCIC_STORE"}, otel.Tracer("test"), pub,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "0f8e9c1a-demo" }),
	)
}

func TestSaveThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := infrastructure.NewMemoryKV(func() time.Time { return fixedNow })
	pub := &recordingPublisher{}
	svc := newTestService(t, kv, pub)

	rec := domain.NewTemplate()
	resp, err := svc.Save(ctx, rec)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "0f8e9c1a-demo", resp.ID)

	raw, err := kv.Get(ctx, "order:0f8e9c1a-demo")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"timestamp":1716199200000`)

	got, err := svc.Get(ctx, resp.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Fatalf("get mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, pub.events, 1)
	assert.Equal(t, rec.OrderID, pub.events[0].OrderID)
	assert.Equal(t, fixedNow.Add(domain.DefaultStoreTTL), pub.events[0].ExpiresAt)
}

func TestSaveUsesFallbackBinding(t *testing.T) {
	bindings := infrastructure.NewBindings()
	kv := infrastructure.NewMemoryKV(nil)
	bindings.Bind("ORDER_STORE", kv)
	svc := NewOrderStoreService(bindings, StoreConfig{Binding: "JHPCIC_STORE", FallbackBinding: "ORDER_STORE"}, otel.Tracer("test"), &recordingPublisher{})

	resp, err := svc.Save(context.Background(), domain.NewTemplate())
	require.NoError(t, err)
	assert.Equal(t, 1, kv.Len())
	assert.NotEmpty(t, resp.ID)
}

func TestSaveWithoutBinding(t *testing.T) {
	svc := newTestService(t, nil, &recordingPublisher{})

	_, err := svc.Save(context.Background(), domain.NewTemplate())
	assert.True(t, errors.Is(err, domain.ErrConfigurationMissing))

	_, err = svc.Get(context.Background(), "abc")
	assert.True(t, errors.Is(err, domain.ErrConfigurationMissing))
}

func TestSaveSurfacesWriteFailure(t *testing.T) {
	bindings := infrastructure.NewBindings()
	bindings.Bind("JHPCIC_STORE", failingKV{err: errors.New("quota exceeded")})
	pub := &recordingPublisher{}
	svc := NewOrderStoreService(bindings, StoreConfig{Binding: "JHPCIC_STORE"}, otel.Tracer("test"), pub)

	_, err := svc.Save(context.Background(), domain.NewTemplate())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, pub.events)
}

func TestSaveIgnoresPublisherFailure(t *testing.T) {
	svc := newTestService(t, infrastructure.NewMemoryKV(nil), &recordingPublisher{err: errors.New("kafka down")})

	resp, err := svc.Save(context.Background(), domain.NewTemplate())
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestSaveRejectsInvalidRecord(t *testing.T) {
	svc := newTestService(t, infrastructure.NewMemoryKV(nil), &recordingPublisher{})

	_, err := svc.Save(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrParseFailure))

	_, err = svc.Save(context.Background(), &domain.InsuranceData{Status: "refunded"})
	assert.True(t, errors.Is(err, domain.ErrParseFailure))
}

func TestGetErrors(t *testing.T) {
	ctx := context.Background()
	kv := infrastructure.NewMemoryKV(nil)
	svc := newTestService(t, kv, &recordingPublisher{})

	_, err := svc.Get(ctx, "  ")
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	_, err = svc.Get(ctx, "unknown")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, kv.Put(ctx, "order:broken", []byte("{not json"), 0))
	_, err = svc.Get(ctx, "broken")
	assert.True(t, errors.Is(err, domain.ErrParseFailure))
}

func TestGetAfterTTLIsNotFound(t *testing.T) {
	ctx := context.Background()
	now := fixedNow
	clock := func() time.Time { return now }
	kv := infrastructure.NewMemoryKV(clock)
	bindings := infrastructure.NewBindings()
	bindings.Bind("JHPCIC_STORE", kv)
	svc := NewOrderStoreService(bindings, StoreConfig{Binding: "JHPCIC_STORE"}, otel.Tracer("test"), &recordingPublisher{}, WithClock(clock))

	resp, err := svc.Save(ctx, domain.NewTemplate())
	require.NoError(t, err)

	now = now.Add(domain.DefaultStoreTTL)
	_, err = svc.Get(ctx, resp.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
