package interfaces

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"jhpcic/internal/service/order/domain"
)

var (
	storeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order_store",
		Name:      "requests_total",
		Help:      "Order store requests by operation and result.",
	}, []string{"operation", "result"})

	storeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "order_store",
		Name:      "request_duration_seconds",
		Help:      "Order store request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
)

func observe(operation, result string, start time.Time) {
	storeRequests.WithLabelValues(operation, result).Inc()
	storeLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return "bad_request"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConfigurationMissing):
		return "not_configured"
	case errors.Is(err, domain.ErrParseFailure):
		return "parse_failure"
	default:
		return "error"
	}
}
