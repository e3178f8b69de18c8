package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"jhpcic/internal/service/order/domain"
)

// DefaultSessionTTL 会话空闲过期时间
const DefaultSessionTTL = 30 * time.Minute

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.Wrap(domain.ErrNotFound, "session not found or expired")

type session struct {
	mu       sync.Mutex // 保护 wizard
	wizard   *Wizard
	lastSeen time.Time // 由 Registry.mu 保护
}

// Registry 保存门户上正在进行的向导会话，仅在内存中
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry 创建会话表，ttl <= 0 时使用默认值
func NewRegistry(ttl time.Duration, now func() time.Time) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{sessions: make(map[string]*session), ttl: ttl, now: now}
}

// Create 登记一个向导并返回会话 ID
func (r *Registry) Create(w *Wizard) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = &session{wizard: w, lastSeen: r.now()}
	r.mu.Unlock()
	return id
}

// With 在会话锁内对向导执行 fn，并刷新空闲时间
func (r *Registry) With(id string, fn func(w *Wizard) error) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	now := r.now()
	if ok && now.Sub(s.lastSeen) > r.ttl {
		delete(r.sessions, id)
		ok = false
	}
	if ok {
		s.lastSeen = now
	}
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.wizard)
}

// Sweep 清理过期会话，返回清理数量
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now, n := r.now(), 0
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Len 返回当前会话数
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Run 定期清理过期会话，直到 ctx 结束
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}
