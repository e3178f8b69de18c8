package domain

import (
	"strings"
	"time"
)

const (
	// StoreKeyPrefix 是存储键的命名空间
	StoreKeyPrefix = "order:"
	// DefaultStoreTTL 记录写入后保留 30 天 (2592000 秒)
	DefaultStoreTTL = 30 * 24 * time.Hour
)

// StoredOrder 是写入 KV 存储的包装结构
type StoredOrder struct {
	ID        string        `json:"id"`
	Timestamp int64         `json:"timestamp"` // 毫秒时间戳
	Data      InsuranceData `json:"data"`
}

// StoreKey 根据标识符生成存储键
func StoreKey(id string) string {
	return StoreKeyPrefix + id
}

// IDFromStoreKey 是 StoreKey 的逆操作
func IDFromStoreKey(key string) (string, bool) {
	if !strings.HasPrefix(key, StoreKeyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, StoreKeyPrefix), true
}
