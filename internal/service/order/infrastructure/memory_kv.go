package infrastructure

import (
	"context"
	"sync"
	"time"

	"jhpcic/internal/service/order/domain"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // 零值表示永不过期
}

// MemoryKV 是进程内的 KV 实现，用于本地开发和测试
type MemoryKV struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryKV 创建内存 KV，now 为 nil 时使用 time.Now
func NewMemoryKV(now func() time.Time) *MemoryKV {
	if now == nil {
		now = time.Now
	}
	return &MemoryKV{entries: make(map[string]memoryEntry), now: now}
}

func (m *MemoryKV) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = e
	return nil
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

// Len 返回当前条目数（含尚未被访问淘汰的过期条目）
func (m *MemoryKV) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
