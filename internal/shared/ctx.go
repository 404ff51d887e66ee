// Package shared holds the request identity passed between the web and model layers.
package shared

import "errors"

// ErrCtxCannotNewRootCtx is returned when NewCtx is asked for user 0.
var ErrCtxCannotNewRootCtx = errors.New("ctx: cannot create root ctx from a user id")

// Ctx identifies the principal a request acts for. It lives for one request.
type Ctx struct {
	userID int64
}

// RootCtx returns the privileged context used by internal operations such as
// login lookups and dev seeding.
func RootCtx() Ctx {
	return Ctx{}
}

// NewCtx builds the context of an authenticated user.
func NewCtx(userID int64) (Ctx, error) {
	if userID == 0 {
		return Ctx{}, ErrCtxCannotNewRootCtx
	}
	return Ctx{userID: userID}, nil
}

// UserID returns the acting user, 0 for the root context.
func (c Ctx) UserID() int64 {
	return c.userID
}

// IsRoot reports whether c is the root context.
func (c Ctx) IsRoot() bool {
	return c.userID == 0
}
