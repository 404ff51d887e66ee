package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/odyssey-rpc/internal/auth"
	"github.com/odyssey-erp/odyssey-rpc/internal/model"
	"github.com/odyssey-erp/odyssey-rpc/internal/observability"
	"github.com/odyssey-erp/odyssey-rpc/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-rpc/internal/rpc"
	"github.com/odyssey-erp/odyssey-rpc/internal/token"
)

// Deps are the runtime resources the HTTP layer is built on.
type Deps struct {
	Model *model.ModelManager
	// Redis backs the login throttle. Nil disables it.
	Redis   redis.Cmdable
	Metrics *observability.Metrics
	Health  HealthCheck
}

// NewHandler wires the authenticator, the auth and rpc handlers and the
// router from cfg and deps.
func NewHandler(cfg *Config, logger *slog.Logger, deps Deps) (http.Handler, error) {
	authn, err := token.NewAuthenticator(token.Config{Key: cfg.TokenKey, Duration: cfg.TokenDuration})
	if err != nil {
		return nil, fmt.Errorf("app: authenticator: %w", err)
	}

	var throttle *auth.Throttle
	if deps.Redis != nil {
		throttle = auth.NewThrottle(deps.Redis, cfg.LoginMaxAttempts, cfg.LoginLockout, logger)
	}

	opts := auth.Options{RefreshWindow: cfg.TokenRefreshWindow, SecureCookie: cfg.IsProduction()}
	responder := httpx.NewResponder(ClientErrorFor)

	var recorder rpc.Recorder
	if deps.Metrics != nil {
		recorder = deps.Metrics
	}

	return NewRouter(RouterParams{
		Logger:      logger,
		Config:      cfg,
		Metrics:     deps.Metrics,
		Responder:   responder,
		Resolver:    auth.NewResolver(deps.Model, authn, opts),
		AuthHandler: auth.NewHandler(auth.NewService(deps.Model, authn, throttle), responder, opts),
		RPCHandler:  rpc.NewHandler(rpc.New(), deps.Model, responder, recorder),
		Health:      deps.Health,
	}), nil
}
