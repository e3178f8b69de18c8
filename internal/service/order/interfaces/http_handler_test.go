package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"jhpcic/internal/service/order/application"
	"jhpcic/internal/service/order/domain"
	"jhpcic/internal/service/order/infrastructure"
)

type brokenKV struct{}

func (brokenKV) Put(context.Context, string, []byte, time.Duration) error {
	return errors.New("KV put failed: 429")
}
func (brokenKV) Get(context.Context, string) ([]byte, error) { return nil, errors.New("KV get failed") }

func newTestMux(t *testing.T, bind func(b *infrastructure.Bindings)) *http.ServeMux {
	t.Helper()
	bindings := infrastructure.NewBindings()
	if bind != nil {
		bind(bindings)
	}
	svc := application.NewOrderStoreService(bindings, application.StoreConfig{Binding: "JHPCIC_STORE"}, otel.Tracer("test"), infrastructure.NoopPublisher{})
	mux := http.NewServeMux()
	NewOrderHandler(svc).RegisterRoutes(mux)
	return mux
}

func withMemory(b *infrastructure.Bindings) { b.Bind("JHPCIC_STORE", infrastructure.NewMemoryKV(nil)) }

func doRequest(mux http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func assertCORS(t *testing.T, rec *httptest.ResponseRecorder, methods string) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, methods, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestSaveAndGet(t *testing.T) {
	mux := newTestMux(t, withMemory)
	rec := domain.NewTemplate()
	body, err := json.Marshal(rec)
	require.NoError(t, err)

	saveResp := doRequest(mux, http.MethodPost, "/api/save", body)
	require.Equal(t, http.StatusOK, saveResp.Code)
	assertCORS(t, saveResp, "POST, OPTIONS")

	var saved application.SaveOrderResponse
	require.NoError(t, json.Unmarshal(saveResp.Body.Bytes(), &saved))
	assert.True(t, saved.Success)
	require.NotEmpty(t, saved.ID)

	getResp := doRequest(mux, http.MethodGet, "/api/get?id="+saved.ID, nil)
	require.Equal(t, http.StatusOK, getResp.Code)
	assertCORS(t, getResp, "GET, OPTIONS")
	assert.Equal(t, "application/json", getResp.Header().Get("Content-Type"))

	var got domain.InsuranceData
	require.NoError(t, json.Unmarshal(getResp.Body.Bytes(), &got))
	assert.Equal(t, *rec, got)
}

func TestGetErrors(t *testing.T) {
	mux := newTestMux(t, withMemory)

	missing := doRequest(mux, http.MethodGet, "/api/get", nil)
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Contains(t, missing.Body.String(), "Missing ID")
	assertCORS(t, missing, "GET, OPTIONS")

	notFound := doRequest(mux, http.MethodGet, "/api/get?id=nope", nil)
	assert.Equal(t, http.StatusNotFound, notFound.Code)
	assert.Contains(t, notFound.Body.String(), "Order Not Found or Expired")
}

func TestStoreNotConfigured(t *testing.T) {
	mux := newTestMux(t, nil)

	getResp := doRequest(mux, http.MethodGet, "/api/get?id=abc", nil)
	assert.Equal(t, http.StatusInternalServerError, getResp.Code)
	assert.Contains(t, getResp.Body.String(), "KV Not Configured")

	body, _ := json.Marshal(domain.NewTemplate())
	saveResp := doRequest(mux, http.MethodPost, "/api/save", body)
	assert.Equal(t, http.StatusInternalServerError, saveResp.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(saveResp.Body.Bytes(), &payload))
	assert.Contains(t, payload["error"], "JHPCIC_STORE")
}

func TestStoreFailuresSurfaceMessage(t *testing.T) {
	mux := newTestMux(t, func(b *infrastructure.Bindings) { b.Bind("JHPCIC_STORE", brokenKV{}) })

	body, _ := json.Marshal(domain.NewTemplate())
	saveResp := doRequest(mux, http.MethodPost, "/api/save", body)
	assert.Equal(t, http.StatusInternalServerError, saveResp.Code)
	assert.Contains(t, saveResp.Body.String(), "KV put failed: 429")

	getResp := doRequest(mux, http.MethodGet, "/api/get?id=abc", nil)
	assert.Equal(t, http.StatusInternalServerError, getResp.Code)
	assert.Contains(t, getResp.Body.String(), `"error"`)
}

func TestSaveMalformedBody(t *testing.T) {
	mux := newTestMux(t, withMemory)
	rec := doRequest(mux, http.MethodPost, "/api/save", []byte("{oops"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestPreflightAndMethods(t *testing.T) {
	mux := newTestMux(t, withMemory)

	for target, methods := range map[string]string{"/api/save": "POST, OPTIONS", "/api/get": "GET, OPTIONS"} {
		pre := doRequest(mux, http.MethodOptions, target, nil)
		assert.Equal(t, http.StatusOK, pre.Code, target)
		assert.Empty(t, pre.Body.String())
		assertCORS(t, pre, methods)
	}

	wrong := doRequest(mux, http.MethodGet, "/api/save", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, wrong.Code)
	assertCORS(t, wrong, "POST, OPTIONS")
}
