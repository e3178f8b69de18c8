package infrastructure

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"jhpcic/internal/pkg/redis"
	"jhpcic/internal/service/order/domain"
)

// RedisKV 是 port.KeyValueStore 的 Redis 实现，过期由 Redis 自身的 TTL 负责
type RedisKV struct {
	redisClient *redis.Client
}

// NewRedisKV 创建一个新的 Redis KV 适配器
func NewRedisKV(redisClient *redis.Client) *RedisKV {
	return &RedisKV{redisClient: redisClient}
}

// Put 写入键值并设置过期时间
func (r *RedisKV) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.redisClient.GetClient().Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", key)
	}
	return nil
}

// Get 读取键值，键不存在（包括已过期被淘汰）时返回 domain.ErrNotFound
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.redisClient.GetClient().Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "redis get %s", key)
	}
	return val, nil
}
