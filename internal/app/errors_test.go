package app

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odyssey-erp/odyssey-rpc/internal/auth"
	"github.com/odyssey-erp/odyssey-rpc/internal/model"
	"github.com/odyssey-erp/odyssey-rpc/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-rpc/internal/rpc"
	"github.com/odyssey-erp/odyssey-rpc/internal/token"
)

func TestClientErrorFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
		detail any
	}{
		{
			name:   "login",
			err:    &auth.LoginError{Reason: auth.ReasonPwdNotMatching, UserID: 1000},
			status: http.StatusForbidden,
			msg:    ClientLoginFail,
		},
		{
			name:   "ctx",
			err:    &auth.CtxExtError{Reason: auth.ReasonFailValidate, Err: token.ErrExpired},
			status: http.StatusForbidden,
			msg:    ClientNoAuth,
		},
		{
			name:   "entity not found",
			err:    fmt.Errorf("delete: %w", &model.EntityNotFoundError{Entity: "task", ID: 7}),
			status: http.StatusBadRequest,
			msg:    ClientEntityNotFound,
			detail: &model.EntityNotFoundError{Entity: "task", ID: 7},
		},
		{
			name:   "unknown method",
			err:    &rpc.MethodUnknownError{Method: "drop"},
			status: http.StatusBadRequest,
			msg:    ClientRPCRequestInvalid,
			detail: map[string]string{"method": "drop"},
		},
		{
			name:   "bad body",
			err:    &httpx.BodyError{Err: errors.New("eof")},
			status: http.StatusBadRequest,
			msg:    ClientRPCRequestInvalid,
		},
		{
			name:   "store",
			err:    &model.StoreError{Op: "list", Entity: "task", Err: errors.New("conn refused")},
			status: http.StatusInternalServerError,
			msg:    ClientServiceError,
		},
		{
			name:   "token key",
			err:    token.ErrKeyFailHmac,
			status: http.StatusInternalServerError,
			msg:    ClientServiceError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := ClientErrorFor(tt.err)
			assert.Equal(t, tt.status, ce.Status)
			assert.Equal(t, tt.msg, ce.Message)
			assert.Equal(t, tt.detail, ce.Detail)
		})
	}
}
