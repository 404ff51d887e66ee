package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-rpc/internal/platform/httpx"
)

// Handler wires HTTP endpoints for login and logoff.
type Handler struct {
	service   *Service
	responder *httpx.Responder
	validator *validator.Validate
	secure    bool
}

// NewHandler constructs a Handler instance.
func NewHandler(service *Service, responder *httpx.Responder, opts Options) *Handler {
	return &Handler{
		service:   service,
		responder: responder,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		secure:    opts.SecureCookie,
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.responder.Handle(h.handleLogin))
	r.Post("/logoff", h.responder.Handle(h.handleLogoff))
}

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Pwd      string `json:"pwd" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var payload loginPayload
	if err := httpx.DecodeJSON(w, r, &payload); err != nil {
		return err
	}
	if err := h.validator.Struct(payload); err != nil {
		return &httpx.BodyError{Err: err}
	}

	tok, err := h.service.Login(r.Context(), payload.Username, payload.Pwd)
	if err != nil {
		return err
	}
	if err := setTokenCookie(w, tok, h.secure); err != nil {
		return err
	}
	httpx.Result(w, map[string]bool{"success": true})
	return nil
}

type logoffPayload struct {
	Logoff bool `json:"logoff"`
}

func (h *Handler) handleLogoff(w http.ResponseWriter, r *http.Request) error {
	var payload logoffPayload
	if err := httpx.DecodeJSON(w, r, &payload); err != nil {
		return err
	}
	if payload.Logoff {
		removeTokenCookie(w, h.secure)
	}
	httpx.Result(w, map[string]bool{"logged_off": payload.Logoff})
	return nil
}
