package port

import (
	"context"
	"time"
)

// KeyValueStore 是托管 KV 存储的出站端口。
// Get 在键不存在或已过期时返回 domain.ErrNotFound，两者对调用方不可区分。
type KeyValueStore interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// KeyValueBindings 按绑定名解析 KV 后端。未绑定时返回 domain.ErrConfigurationMissing。
type KeyValueBindings interface {
	Resolve(names ...string) (KeyValueStore, string, error)
}
