// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"jhpcic/internal/pkg/tracing"
)

// Init 配置全局 logger。console 为 true 时输出人类可读格式（用于命令行工具）。
func Init(serviceName, level string, console bool) {
	var out io.Writer = os.Stderr
	if console {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(ParseLevel(level))
	zlog.Logger = zerolog.New(out).With().Timestamp().Str("service", serviceName).Logger()
	zerolog.DefaultContextLogger = &zlog.Logger
}

// ParseLevel 解析日志级别，无法识别时使用 info
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Ctx 返回 context 中的 logger，没有时返回全局 logger
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &zlog.Logger
}

// Middleware 提取上游的追踪上下文，把带 trace_id 的 logger 放入请求 context
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		l := zlog.With().Str("method", r.Method).Str("path", r.URL.Path)
		if traceID := tracing.GetTraceIDFromContext(ctx); traceID != "" {
			l = l.Str("trace_id", traceID)
		}
		reqLogger := l.Logger()
		ctx = reqLogger.WithContext(ctx)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))
		reqLogger.Debug().Int("status", rec.status).Dur("elapsed", time.Since(start)).Msg("request served")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
