// internal/pkg/redis/client.go
package redis

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

// Client 封装了 go-redis 的通用客户端，单地址时为单机模式，多地址时为集群模式
type Client struct {
	client goredis.UniversalClient
}

// Options 是建立连接所需的配置
type Options struct {
	Addrs    string // 格式为 "host1:port1,host2:port2"
	Password string
	DB       int
}

// NewClient 创建客户端并执行一次 PING 确认连接可用
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	addrs := splitAddrs(opts.Addrs)
	if len(addrs) == 0 {
		return nil, errors.New("redis address is empty")
	}

	client := goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs:        addrs,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "failed to ping redis %v", addrs)
	}
	return &Client{client: client}, nil
}

// Wrap 用已有的客户端构造 Client，主要用于测试
func Wrap(client goredis.UniversalClient) *Client {
	return &Client{client: client}
}

// GetClient 返回底层客户端
func (c *Client) GetClient() goredis.UniversalClient {
	return c.client
}

// Close 关闭连接池
func (c *Client) Close() error {
	return c.client.Close()
}

func splitAddrs(addrs string) []string {
	var out []string
	for _, a := range strings.Split(addrs, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
