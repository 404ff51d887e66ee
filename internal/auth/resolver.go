// Package auth resolves the request Ctx from the auth cookie and serves the
// login and logoff endpoints.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/odyssey-erp/odyssey-rpc/internal/model"
	"github.com/odyssey-erp/odyssey-rpc/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-rpc/internal/shared"
	"github.com/odyssey-erp/odyssey-rpc/internal/token"
)

type resolutionKey struct{}

// Resolution is the outcome of context resolution for one request: either a
// Ctx or the CtxExtError explaining its absence.
type Resolution struct {
	ctx shared.Ctx
	err *CtxExtError
}

// Resolved wraps a successfully resolved Ctx.
func Resolved(c shared.Ctx) Resolution {
	return Resolution{ctx: c}
}

// Unresolved wraps a resolution failure.
func Unresolved(err *CtxExtError) Resolution {
	return Resolution{err: err}
}

// Ctx returns the resolved Ctx or the resolution error.
func (r Resolution) Ctx() (shared.Ctx, error) {
	if r.err != nil {
		return shared.Ctx{}, r.err
	}
	return r.ctx, nil
}

// WithResolution stores res in ctx.
func WithResolution(ctx context.Context, res Resolution) context.Context {
	return context.WithValue(ctx, resolutionKey{}, res)
}

// CtxFrom returns the Ctx resolved for the request. It fails with
// ReasonCtxNotInRequest when the resolver never ran.
func CtxFrom(ctx context.Context) (shared.Ctx, error) {
	res, ok := ctx.Value(resolutionKey{}).(Resolution)
	if !ok {
		return shared.Ctx{}, &CtxExtError{Reason: ReasonCtxNotInRequest}
	}
	return res.Ctx()
}

// Options is the cookie policy shared by the resolver and the login handler.
type Options struct {
	// RefreshWindow renews the cookie once a valid token has less than this left.
	RefreshWindow time.Duration
	SecureCookie  bool
}

// Resolver turns the auth cookie into a Ctx.
type Resolver struct {
	mm   *model.ModelManager
	auth *token.Authenticator
	opts Options
}

// NewResolver constructs a Resolver.
func NewResolver(mm *model.ModelManager, auth *token.Authenticator, opts Options) *Resolver {
	return &Resolver{mm: mm, auth: auth, opts: opts}
}

// Middleware resolves every request. It never rejects; routes that need a
// Ctx add RequireCtx.
func (rv *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := rv.resolve(w, r)
		if c, err := res.Ctx(); err == nil {
			httpx.AddAttrs(r.Context(), slog.Int64("user_id", c.UserID()))
		}
		next.ServeHTTP(w, r.WithContext(WithResolution(r.Context(), res)))
	})
}

func (rv *Resolver) resolve(w http.ResponseWriter, r *http.Request) Resolution {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Unresolved(&CtxExtError{Reason: ReasonTokenNotInCookie})
	}

	tok, err := token.Parse(cookie.Value)
	if err != nil {
		removeTokenCookie(w, rv.opts.SecureCookie)
		return Unresolved(&CtxExtError{Reason: ReasonTokenWrongFormat, Err: err})
	}

	user, err := rv.mm.Users().FirstByUsername(r.Context(), shared.RootCtx(), tok.Ident)
	if err != nil {
		if errors.Is(err, model.ErrUsernameNotFound) {
			removeTokenCookie(w, rv.opts.SecureCookie)
			return Unresolved(&CtxExtError{Reason: ReasonUserNotFound, Err: err})
		}
		return Unresolved(&CtxExtError{Reason: ReasonModelAccessError, Err: err})
	}

	if err := rv.auth.ValidateToken(tok, user.TokenSalt); err != nil {
		removeTokenCookie(w, rv.opts.SecureCookie)
		return Unresolved(&CtxExtError{Reason: ReasonFailValidate, Err: err})
	}

	remaining, err := rv.auth.Remaining(tok)
	if err != nil || remaining <= rv.opts.RefreshWindow {
		fresh, err := rv.auth.GenerateToken(user.Username, user.TokenSalt)
		if err == nil {
			err = setTokenCookie(w, fresh, rv.opts.SecureCookie)
		}
		if err != nil {
			return Unresolved(&CtxExtError{Reason: ReasonCannotSetTokenCookie, Err: err})
		}
	}

	c, err := shared.NewCtx(user.ID)
	if err != nil {
		return Unresolved(&CtxExtError{Reason: ReasonCtxCreateFail, Err: err})
	}
	return Resolved(c)
}

// RequireCtx rejects requests without a resolved Ctx through rs.
func RequireCtx(rs *httpx.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := CtxFrom(r.Context()); err != nil {
				rs.Error(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
