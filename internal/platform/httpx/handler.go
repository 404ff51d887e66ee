package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// HandlerFunc is an http handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorMapper turns an internal error into the client error sent on the wire.
// A nil result falls back to ServiceError.
type ErrorMapper func(error) *ClientError

// Responder writes errors through one ErrorMapper so every route shares the
// same error boundary.
type Responder struct {
	mapErr ErrorMapper
}

// NewResponder returns a Responder using mapErr.
func NewResponder(mapErr ErrorMapper) *Responder {
	return &Responder{mapErr: mapErr}
}

// Handle adapts h to an http.HandlerFunc.
func (rs *Responder) Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			rs.Error(w, r, err)
		}
	}
}

// Error records err in the request log entry and writes its client form.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	var ce *ClientError
	if rs.mapErr != nil {
		ce = rs.mapErr(err)
	}
	if ce == nil {
		fallback := ServiceError
		ce = &fallback
	}
	recordError(r.Context(), err, ce)
	JSON(w, ce.Status, errorBody{
		Message: ce.Message,
		Detail:  ce.Detail,
		ReqID:   middleware.GetReqID(r.Context()),
	})
}
