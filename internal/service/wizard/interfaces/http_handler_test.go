package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"jhpcic/internal/service/order/codec"
	"jhpcic/internal/service/order/domain"
	"jhpcic/internal/service/wizard"
)

type mapStore map[string]*domain.InsuranceData

func (m mapStore) Save(context.Context, *domain.InsuranceData) (string, error) { return "", nil }

func (m mapStore) Get(_ context.Context, id string) (*domain.InsuranceData, error) {
	if d, ok := m[id]; ok {
		return d.Clone(), nil
	}
	return nil, domain.ErrNotFound
}

func newMux(store mapStore) *http.ServeMux {
	mux := http.NewServeMux()
	NewWizardHandler(wizard.NewRegistry(time.Minute, nil), store, otel.Tracer("test")).RegisterRoutes(mux)
	return mux
}

func call(t *testing.T, mux http.Handler, method, target string, body any) (*httptest.ResponseRecorder, sessionResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, &buf))
	var resp sessionResponse
	if rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestWizardSessionFlow(t *testing.T) {
	mux := newMux(mapStore{"abc": domain.NewTemplate()})

	rec, created := call(t, mux, http.MethodPost, "/index/sessions?id=abc", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, wizard.StepTerms, created.View.Step)
	base := "/index/sessions/" + created.SessionID

	rec, resp := call(t, mux, http.MethodPost, base+"/terms", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wizard.StepVerify, resp.View.Step)

	rec, _ = call(t, mux, http.MethodPost, base+"/verify", verifyRequest{Mobile: "13900139000"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "验证失败：手机号不匹配 (请输入 13800138000)", errorOf(t, rec))

	_, resp = call(t, mux, http.MethodPost, base+"/verify", verifyRequest{Mobile: "13800138000"})
	assert.Equal(t, wizard.StepCheck, resp.View.Step)
	require.NotNil(t, resp.View.Record)
	assert.Equal(t, "京A88888", resp.View.Record.Vehicle.Plate)

	_, resp = call(t, mux, http.MethodPost, base+"/check", nil)
	assert.Equal(t, wizard.StepSign, resp.View.Step)

	rec, _ = call(t, mux, http.MethodPost, base+"/sign", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "请先签名", errorOf(t, rec))

	_, resp = call(t, mux, http.MethodPost, base+"/strokes", strokesRequest{Points: []wizard.Point{{X: 1, Y: 1}, {X: 4, Y: 9}}})
	assert.True(t, resp.View.HasSigned)
	_, resp = call(t, mux, http.MethodDelete, base+"/signature", nil)
	assert.False(t, resp.View.HasSigned)
	call(t, mux, http.MethodPost, base+"/strokes", strokesRequest{Points: []wizard.Point{{X: 2, Y: 2}}})

	_, resp = call(t, mux, http.MethodPost, base+"/sign", nil)
	assert.Equal(t, wizard.StepPay, resp.View.Step)
	require.NotNil(t, resp.View.Payment)

	_, resp = call(t, mux, http.MethodPost, base+"/back", nil)
	assert.Equal(t, wizard.StepPay, resp.View.Step)

	rec, _ = call(t, mux, http.MethodPost, base+"/terms", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, resp = call(t, mux, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wizard.StepPay, resp.View.Step)
}

func TestOpenRedirectsToSession(t *testing.T) {
	paid := domain.NewTemplate()
	paid.Status = domain.StatusPaid
	token, err := codec.Encode(paid)
	require.NoError(t, err)
	mux := newMux(mapStore{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index?data="+token, nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")

	_, resp := call(t, mux, http.MethodGet, location, nil)
	assert.Equal(t, wizard.StepCompleted, resp.View.Step)
}

func TestOpenFailures(t *testing.T) {
	mux := newMux(mapStore{})

	rec, _ := call(t, mux, http.MethodPost, "/index/sessions?id=gone", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, wizard.MsgFetchFailed, errorOf(t, rec))

	rec, _ = call(t, mux, http.MethodPost, "/index/sessions?data=!!!", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, wizard.MsgDecodeFailed, errorOf(t, rec))

	rec, _ = call(t, mux, http.MethodPost, "/index/sessions", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = call(t, mux, http.MethodGet, "/index/sessions/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "会话已过期，请重新扫码", errorOf(t, rec))
}

func TestMalformedActionBody(t *testing.T) {
	mux := newMux(mapStore{"abc": domain.NewTemplate()})
	_, created := call(t, mux, http.MethodPost, "/index/sessions?id=abc", nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/index/sessions/"+created.SessionID+"/verify", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyRejectsOverlongMobile(t *testing.T) {
	mux := newMux(mapStore{"abc": domain.NewTemplate()})
	_, created := call(t, mux, http.MethodPost, "/index/sessions?id=abc", nil)
	base := "/index/sessions/" + created.SessionID
	call(t, mux, http.MethodPost, base+"/terms", nil)

	rec, _ := call(t, mux, http.MethodPost, base+"/verify", verifyRequest{Mobile: "138001380009999"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "请输入11位手机号", errorOf(t, rec))

	_, resp := call(t, mux, http.MethodGet, base, nil)
	assert.Equal(t, wizard.StepVerify, resp.View.Step)
}
