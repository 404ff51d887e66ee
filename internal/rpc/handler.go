package rpc

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-rpc/internal/auth"
	"github.com/odyssey-erp/odyssey-rpc/internal/model"
	"github.com/odyssey-erp/odyssey-rpc/internal/platform/httpx"
)

// Recorder counts RPC calls.
type Recorder interface {
	RecordRPC(method, outcome string, known bool)
}

// Handler serves the RPC endpoint.
type Handler struct {
	router    *Router
	mm        *model.ModelManager
	responder *httpx.Responder
	metrics   Recorder
}

// NewHandler constructs a Handler. metrics may be nil.
func NewHandler(router *Router, mm *model.ModelManager, responder *httpx.Responder, metrics Recorder) *Handler {
	return &Handler{router: router, mm: mm, responder: responder, metrics: metrics}
}

// MountRoutes registers the RPC route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/rpc", h.responder.Handle(h.handleRPC))
}

func (h *Handler) handleRPC(w http.ResponseWriter, r *http.Request) error {
	var req Request
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	info := Info{ID: req.ID, Method: req.Method}
	httpx.AddAttrs(r.Context(), info.attrs()...)

	c, err := auth.CtxFrom(r.Context())
	if err != nil {
		return err
	}

	resp, err := h.router.Dispatch(r.Context(), c, h.mm, req)
	h.record(req.Method, err)
	if err != nil {
		return err
	}
	httpx.JSON(w, http.StatusOK, resp)
	return nil
}

func (h *Handler) record(method string, err error) {
	if h.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	_, known := h.router.methods[method]
	h.metrics.RecordRPC(method, outcome, known)
}

func (i Info) attrs() []slog.Attr {
	id := "null"
	if len(i.ID) > 0 {
		id = string(i.ID)
	}
	return []slog.Attr{
		slog.String("rpc_id", id),
		slog.String("rpc_method", i.Method),
	}
}
