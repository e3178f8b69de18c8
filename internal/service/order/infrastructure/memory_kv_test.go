package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jhpcic/internal/service/order/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryKVExpires(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)}
	kv := NewMemoryKV(clock.Now)

	require.NoError(t, kv.Put(ctx, "order:1", []byte(`{"id":"1"}`), time.Hour))

	got, err := kv.Get(ctx, "order:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(got))

	clock.Advance(time.Hour)
	_, err = kv.Get(ctx, "order:1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 0, kv.Len())
}

func TestMemoryKVMissingAndCopy(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV(nil)

	_, err := kv.Get(ctx, "order:missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	value := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", value, 0))
	value[0] = 'x'
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestMemoryKVHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	kv := NewMemoryKV(nil)
	assert.ErrorIs(t, kv.Put(ctx, "k", []byte("v"), 0), context.Canceled)
}

func TestBindingsResolve(t *testing.T) {
	b := NewBindings()
	primary := NewMemoryKV(nil)
	fallback := NewMemoryKV(nil)

	_, _, err := b.Resolve("JHPCIC_STORE", "ORDER_STORE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigurationMissing))
	assert.Contains(t, err.Error(), "KV Namespace 'JHPCIC_STORE' not bound")

	b.Bind("ORDER_STORE", fallback)
	kv, name, err := b.Resolve("JHPCIC_STORE", "ORDER_STORE")
	require.NoError(t, err)
	assert.Equal(t, "ORDER_STORE", name)
	assert.Same(t, fallback, kv)

	b.Bind("JHPCIC_STORE", primary)
	kv, name, err = b.Resolve("JHPCIC_STORE", "ORDER_STORE")
	require.NoError(t, err)
	assert.Equal(t, "JHPCIC_STORE", name)
	assert.Same(t, primary, kv)
}
