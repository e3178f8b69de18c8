// internal/pkg/bootstrap/app.go
package bootstrap

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"jhpcic/internal/pkg/logger"
	"jhpcic/internal/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

type AppCtx struct {
	Mux    *http.ServeMux
	Config *Config
	Tracer trace.Tracer
}

// AppInfo 包含了启动一个服务所需的所有特定信息。
type AppInfo struct {
	ServiceName string
	// Port 是默认端口，配置了 PORT 时以配置为准
	Port int
	// RegisterHandlers 允许每个服务注册自己独特的 HTTP 路由
	RegisterHandlers func(appCtx AppCtx)
	// Background 与 HTTP 服务同生命周期的后台任务
	Background []func(ctx context.Context) error
	// Cleanup 关停时按注册的逆序执行
	Cleanup []func(ctx context.Context) error
}

// Init 加载配置并初始化全局 logger，失败时直接退出。
func Init(serviceName string, console bool) *Config {
	cfg, err := LoadConfig()
	if err != nil {
		logger.Init(serviceName, "info", console)
		zlog.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(serviceName, cfg.App.LogLevel, console)
	current.Store(cfg)
	return cfg
}

// StartService 封装了服务的通用启动和优雅关停逻辑，收到 SIGINT/SIGTERM 后退出。
func StartService(info AppInfo) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := Run(ctx, info); err != nil {
		zlog.Error().Err(err).Str("service", info.ServiceName).Msg("service exited with error")
		os.Exit(1)
	}
}

// Run 启动 HTTP 服务与后台任务，直到 ctx 结束或任一任务出错。
func Run(ctx context.Context, info AppInfo) error {
	cfg := GetCurrentConfig()

	// 1. Tracer
	tp, err := tracing.InitTracerProvider(info.ServiceName, cfg.Infra.Jaeger.Endpoint)
	if err != nil {
		return err
	}

	// 2. 路由
	mux := http.NewServeMux()
	if info.RegisterHandlers != nil {
		info.RegisterHandlers(AppCtx{Mux: mux, Config: cfg, Tracer: otel.Tracer(info.ServiceName)})
	}
	port := cfg.App.Port
	if port == 0 {
		port = info.Port
	}
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           logger.Middleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Info().Msgf("%s listening on %s", info.ServiceName, server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	for _, task := range info.Background {
		g.Go(func() error { return task(gctx) })
	}

	// 3. 优雅关停
	g.Go(func() error {
		<-gctx.Done()
		zlog.Info().Msgf("Shutting down service %s...", info.ServiceName)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// a. 先停止接收请求
		if err := server.Shutdown(shutdownCtx); err != nil {
			zlog.Error().Err(err).Msg("Error shutting down http server")
		}
		// b. 按后进先出释放资源
		for i := len(info.Cleanup) - 1; i >= 0; i-- {
			if err := info.Cleanup[i](shutdownCtx); err != nil {
				zlog.Error().Err(err).Msg("Error during cleanup")
			}
		}
		// c. 关闭 Tracer Provider，确保所有缓冲的 trace 都被发送出去
		if err := tp.Shutdown(shutdownCtx); err != nil {
			zlog.Error().Err(err).Msg("Error shutting down tracer provider")
		}
		zlog.Info().Msgf("Service %s gracefully shut down.", info.ServiceName)
		return nil
	})

	return g.Wait()
}
