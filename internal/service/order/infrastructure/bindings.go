package infrastructure

import (
	"sync"

	"github.com/pkg/errors"

	"jhpcic/internal/service/order/domain"
	"jhpcic/internal/service/order/domain/port"
)

// Bindings 按绑定名管理 KV 后端，对应托管平台上的 KV 命名空间绑定
type Bindings struct {
	mu       sync.RWMutex
	backends map[string]port.KeyValueStore
}

func NewBindings() *Bindings {
	return &Bindings{backends: make(map[string]port.KeyValueStore)}
}

// Bind 将后端注册到指定绑定名下，重复注册会覆盖
func (b *Bindings) Bind(name string, kv port.KeyValueStore) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.backends[name] = kv
}

// Resolve 依次尝试给出的绑定名，返回第一个已注册的后端
func (b *Bindings) Resolve(names ...string) (port.KeyValueStore, string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, name := range names {
		if name == "" {
			continue
		}
		if kv, ok := b.backends[name]; ok {
			return kv, name, nil
		}
	}
	primary := ""
	if len(names) > 0 {
		primary = names[0]
	}
	return nil, "", errors.Wrapf(domain.ErrConfigurationMissing, "KV Namespace '%s' not bound", primary)
}
