// cmd/order-store/main.go
package main

import (
	"context"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"jhpcic/internal/pkg/bootstrap"
	"jhpcic/internal/pkg/mq"
	"jhpcic/internal/pkg/redis"
	"jhpcic/internal/service/order/application"
	"jhpcic/internal/service/order/domain/port"
	"jhpcic/internal/service/order/infrastructure"
	"jhpcic/internal/service/order/interfaces"
)

const serviceName = "order-store"

// main 函数是应用的"组装根" (Composition Root)
func main() {
	cfg := bootstrap.Init(serviceName, false)
	ctx := context.Background()

	var cleanup []func(ctx context.Context) error

	// 1. 存储绑定
	bindings := infrastructure.NewBindings()
	switch backend := cfg.ResolvedBackend(); backend {
	case "redis":
		redisClient, err := redis.NewClient(ctx, redis.Options{
			Addrs:    strings.Join(cfg.Infra.Redis.Addrs, ","),
			Password: cfg.Infra.Redis.Password,
			DB:       cfg.Infra.Redis.DB,
		})
		if err != nil {
			zlog.Fatal().Err(err).Msg("failed to initialize redis client")
		}
		cleanup = append(cleanup, func(context.Context) error { return redisClient.Close() })
		bindings.Bind(cfg.BoundName(), infrastructure.NewRedisKV(redisClient))
	case "memory":
		zlog.Warn().Msg("Using in-memory store, records are lost on restart")
		bindings.Bind(cfg.BoundName(), infrastructure.NewMemoryKV(nil))
	default:
		zlog.Warn().Str("backend", backend).Msg("No store backend bound")
	}

	// 2. 事件发布
	var publisher port.OrderEventPublisher = infrastructure.NoopPublisher{}
	if len(cfg.Infra.Kafka.Brokers) > 0 {
		producer := infrastructure.NewLinkIssuedProducerAdapter(mq.NewKafkaWriter(cfg.Infra.Kafka.Brokers, cfg.Infra.Kafka.OrderTopic))
		cleanup = append(cleanup, func(context.Context) error { return producer.Close() })
		publisher = producer
	}

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        8080,
		Cleanup:     cleanup,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			svc := application.NewOrderStoreService(bindings, application.StoreConfig{
				Binding:         cfg.Store.Binding,
				FallbackBinding: cfg.Store.FallbackBinding,
				TTL:             cfg.Store.TTL,
			}, appCtx.Tracer, publisher)
			interfaces.NewOrderHandler(svc).RegisterRoutes(appCtx.Mux)
		},
	})
}
