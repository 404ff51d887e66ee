package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-rpc/internal/auth"
	"github.com/odyssey-erp/odyssey-rpc/internal/model"
	"github.com/odyssey-erp/odyssey-rpc/internal/model/modeltest"
	"github.com/odyssey-erp/odyssey-rpc/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-rpc/internal/shared"
	"github.com/odyssey-erp/odyssey-rpc/internal/token"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

const tokenDuration = 30 * time.Minute

type fixture struct {
	mm     *model.ModelManager
	stores *modeltest.Stores
	authn  *token.Authenticator
	user   model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mm, stores := modeltest.NewManager()
	authn, err := token.NewAuthenticator(token.Config{Key: []byte("0123456789abcdef0123456789abcdef"), Duration: tokenDuration})
	require.NoError(t, err)

	ctx := context.Background()
	id, err := mm.Users().Create(ctx, shared.RootCtx(), model.UserForCreate{Username: "demo1", PwdClear: "welcome"})
	require.NoError(t, err)
	user, err := mm.Users().Get(ctx, shared.RootCtx(), id)
	require.NoError(t, err)

	return &fixture{mm: mm, stores: stores, authn: authn.WithClock(func() time.Time { return t0 }), user: user}
}

func (f *fixture) tokenAt(t *testing.T, at time.Time, ident string) token.Token {
	t.Helper()
	tok, err := f.authn.WithClock(func() time.Time { return at }).GenerateToken(ident, f.user.TokenSalt)
	require.NoError(t, err)
	return tok
}

func testResponder() *httpx.Responder {
	return httpx.NewResponder(func(err error) *httpx.ClientError {
		var loginErr *auth.LoginError
		var ctxErr *auth.CtxExtError
		var bodyErr *httpx.BodyError
		switch {
		case errors.As(err, &loginErr):
			return &httpx.ClientError{Status: http.StatusForbidden, Message: "LOGIN_FAIL"}
		case errors.As(err, &ctxErr):
			return &httpx.ClientError{Status: http.StatusForbidden, Message: "NO_AUTH"}
		case errors.As(err, &bodyErr):
			return &httpx.ClientError{Status: http.StatusBadRequest, Message: "RPC_REQUEST_INVALID"}
		}
		return nil
	})
}

func authCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}
