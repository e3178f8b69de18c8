package interfaces

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"jhpcic/internal/pkg/logger"
	"jhpcic/internal/service/order/application"
	"jhpcic/internal/service/order/domain"
)

const maxBodyBytes = 1 << 20 // 签名图片会让请求体变大，1MB 足够

// OrderHandler 封装了短链存储的 HTTP 处理器
type OrderHandler struct {
	service *application.OrderStoreService
}

// NewOrderHandler 创建一个新的 HTTP 处理器实例
func NewOrderHandler(service *application.OrderStoreService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *OrderHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/api/save", WithCORS(http.HandlerFunc(h.handleSave), http.MethodPost))
	mux.Handle("/api/get", WithCORS(http.HandlerFunc(h.handleGet), http.MethodGet))
}

func (h *OrderHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	var data domain.InsuranceData
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&data); err != nil {
		observe("save", "parse_failure", start)
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	resp, err := h.service.Save(ctx, &data)
	if err != nil {
		observe("save", resultLabel(err), start)
		logger.Ctx(ctx).Error().Err(err).Msg("Save order failed")
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.String("order.id", resp.ID))
	observe("save", "ok", start)
	writeJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	data, err := h.service.Get(ctx, r.URL.Query().Get("id"))
	if err != nil {
		observe("get", resultLabel(err), start)
		// 根据错误类型返回不同的 HTTP 状态码
		switch {
		case errors.Is(err, domain.ErrBadRequest):
			http.Error(w, "Missing ID", http.StatusBadRequest)
		case errors.Is(err, domain.ErrConfigurationMissing):
			http.Error(w, "KV Not Configured", http.StatusInternalServerError)
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "Order Not Found or Expired", http.StatusNotFound)
		default:
			logger.Ctx(ctx).Error().Err(err).Msg("Get order failed")
			writeJSONError(w, http.StatusInternalServerError, err)
		}
		return
	}

	observe("get", "ok", start)
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
