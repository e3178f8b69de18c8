package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"jhpcic/internal/pkg/logger"
	"jhpcic/internal/service/order/domain"
	"jhpcic/internal/service/order/domain/port"
	"jhpcic/internal/service/wizard"
)

// WizardHandler 以 JSON 接口暴露签约向导的会话
type WizardHandler struct {
	sessions *wizard.Registry
	store    port.OrderStoreClient
	tracer   trace.Tracer
}

func NewWizardHandler(sessions *wizard.Registry, store port.OrderStoreClient, tracer trace.Tracer) *WizardHandler {
	return &WizardHandler{sessions: sessions, store: store, tracer: tracer}
}

type sessionResponse struct {
	SessionID string      `json:"sessionId"`
	View      wizard.View `json:"view"`
}

type verifyRequest struct {
	Mobile string `json:"mobile"`
}

type strokesRequest struct {
	Points []wizard.Point `json:"points"`
}

// RegisterRoutes 注册 /index 及会话接口
func (h *WizardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /index", h.handleOpen)
	mux.HandleFunc("POST /index/sessions", h.handleCreate)
	mux.HandleFunc("GET /index/sessions/{sid}", h.action(func(*wizard.Wizard, *http.Request) error { return nil }))
	mux.HandleFunc("POST /index/sessions/{sid}/terms", h.action(func(w *wizard.Wizard, _ *http.Request) error {
		return w.AcceptTerms()
	}))
	mux.HandleFunc("POST /index/sessions/{sid}/verify", h.action(func(w *wizard.Wizard, r *http.Request) error {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return errors.Wrapf(domain.ErrBadRequest, "decode verify request: %v", err)
		}
		w.SetMobileInput(req.Mobile)
		return w.Verify()
	}))
	mux.HandleFunc("POST /index/sessions/{sid}/check", h.action(func(w *wizard.Wizard, _ *http.Request) error {
		return w.ConfirmDetails()
	}))
	mux.HandleFunc("POST /index/sessions/{sid}/strokes", h.action(func(w *wizard.Wizard, r *http.Request) error {
		var req strokesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return errors.Wrapf(domain.ErrBadRequest, "decode strokes request: %v", err)
		}
		w.DrawStroke(req.Points)
		return nil
	}))
	mux.HandleFunc("DELETE /index/sessions/{sid}/signature", h.action(func(w *wizard.Wizard, _ *http.Request) error {
		w.ClearSignature()
		return nil
	}))
	mux.HandleFunc("POST /index/sessions/{sid}/sign", h.action(func(w *wizard.Wizard, _ *http.Request) error {
		return w.SubmitSignature()
	}))
	mux.HandleFunc("POST /index/sessions/{sid}/back", h.action(func(w *wizard.Wizard, _ *http.Request) error {
		w.Back()
		return nil
	}))
}

// handleOpen 是过渡页跳转的落点：解析记录、创建会话后重定向到会话视图
func (h *WizardHandler) handleOpen(w http.ResponseWriter, r *http.Request) {
	sid, _, err := h.create(r)
	if err != nil {
		writeError(w, err)
		return
	}
	http.Redirect(w, r, "/index/sessions/"+sid, http.StatusSeeOther)
}

func (h *WizardHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	sid, view, err := h.create(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: sid, View: view})
}

func (h *WizardHandler) create(r *http.Request) (string, wizard.View, error) {
	ctx, span := h.tracer.Start(r.Context(), "wizard.OpenSession")
	defer span.End()

	wz, err := wizard.Load(ctx, r.URL.Query(), h.store)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve record failed")
		return "", wizard.View{}, err
	}
	sid := h.sessions.Create(wz)
	view := wz.View()
	span.SetAttributes(attribute.String("wizard.session_id", sid), attribute.String("wizard.step", string(view.Step)))
	logger.Ctx(ctx).Info().Str("session.id", sid).Str("step", string(view.Step)).Msg("Wizard session opened")
	return sid, view, nil
}

// action 在会话锁内执行 fn，并返回执行后的视图
func (h *WizardHandler) action(fn func(w *wizard.Wizard, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := r.PathValue("sid")
		var view wizard.View
		err := h.sessions.With(sid, func(wz *wizard.Wizard) error {
			if err := fn(wz, r); err != nil {
				return err
			}
			view = wz.View()
			return nil
		})
		if err != nil {
			logger.Ctx(r.Context()).Info().Err(err).Str("session.id", sid).Msg("Wizard action rejected")
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{SessionID: sid, View: view})
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrParseFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": wizard.Message(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
