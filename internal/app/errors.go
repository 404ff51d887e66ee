package app

import (
	"errors"
	"net/http"

	"github.com/odyssey-erp/odyssey-rpc/internal/auth"
	"github.com/odyssey-erp/odyssey-rpc/internal/model"
	"github.com/odyssey-erp/odyssey-rpc/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-rpc/internal/rpc"
)

// Client error messages.
const (
	ClientLoginFail         = "LOGIN_FAIL"
	ClientNoAuth            = "NO_AUTH"
	ClientEntityNotFound    = "ENTITY_NOT_FOUND"
	ClientRPCRequestInvalid = "RPC_REQUEST_INVALID"
	ClientServiceError      = "SERVICE_ERROR"
)

// ClientErrorFor maps an internal error to what the client is told. Login
// failures never say which check failed.
func ClientErrorFor(err error) *httpx.ClientError {
	var (
		loginErr *auth.LoginError
		ctxErr   *auth.CtxExtError
		notFound *model.EntityNotFoundError
		reqErr   rpc.RequestError
		bodyErr  *httpx.BodyError
	)
	switch {
	case errors.As(err, &loginErr):
		return &httpx.ClientError{Status: http.StatusForbidden, Message: ClientLoginFail}
	case errors.As(err, &ctxErr):
		return &httpx.ClientError{Status: http.StatusForbidden, Message: ClientNoAuth}
	case errors.As(err, &notFound):
		return &httpx.ClientError{Status: http.StatusBadRequest, Message: ClientEntityNotFound, Detail: notFound}
	case errors.As(err, &reqErr):
		return &httpx.ClientError{
			Status:  http.StatusBadRequest,
			Message: ClientRPCRequestInvalid,
			Detail:  map[string]string{"method": reqErr.RPCMethod()},
		}
	case errors.As(err, &bodyErr), errors.Is(err, model.ErrTaskTitleRequired):
		return &httpx.ClientError{Status: http.StatusBadRequest, Message: ClientRPCRequestInvalid}
	}
	return &httpx.ClientError{Status: http.StatusInternalServerError, Message: ClientServiceError}
}
