// cmd/portal/main.go
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jhpcic/internal/pkg/bootstrap"
	"jhpcic/internal/pkg/httpclient"
	buffer "jhpcic/internal/service/buffer/interfaces"
	"jhpcic/internal/service/order/infrastructure/adapter"
	"jhpcic/internal/service/wizard"
	wizardhttp "jhpcic/internal/service/wizard/interfaces"
)

const (
	serviceName   = "portal"
	sweepInterval = time.Minute
)

// 门户提供扫码落地页 /buffer 与签约向导 /index
func main() {
	bootstrap.Init(serviceName, false)

	sessions := wizard.NewRegistry(wizard.DefaultSessionTTL, nil)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        8081,
		Background: []func(ctx context.Context) error{
			func(ctx context.Context) error { return sessions.Run(ctx, sweepInterval) },
		},
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			store := adapter.NewOrderStoreHTTPAdapter(httpclient.NewClient(appCtx.Tracer), appCtx.Config.App.StoreBaseURL)

			appCtx.Mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
			appCtx.Mux.Handle("/metrics", promhttp.Handler())
			buffer.NewBufferHandler(0).RegisterRoutes(appCtx.Mux)
			wizardhttp.NewWizardHandler(sessions, store, appCtx.Tracer).RegisterRoutes(appCtx.Mux)
		},
	})
}
