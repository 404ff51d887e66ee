package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttlePrefix = "login_fail:"

// Throttle counts failed logins per username in redis and locks the username
// out once maxFails failures happened within lockout. A nil Throttle never locks.
// Redis failures are logged and let the attempt through.
type Throttle struct {
	client   redis.Cmdable
	maxFails int64
	lockout  time.Duration
	logger   *slog.Logger
}

// NewThrottle constructs a Throttle.
func NewThrottle(client redis.Cmdable, maxFails int, lockout time.Duration, logger *slog.Logger) *Throttle {
	if logger == nil {
		logger = slog.Default()
	}
	return &Throttle{client: client, maxFails: int64(maxFails), lockout: lockout, logger: logger}
}

// Locked reports whether username is currently locked out.
func (t *Throttle) Locked(ctx context.Context, username string) bool {
	if t == nil {
		return false
	}
	n, err := t.client.Get(ctx, throttlePrefix+username).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			t.logger.Warn("login throttle read", slog.Any("error", err))
		}
		return false
	}
	return n >= t.maxFails
}

// Fail records a failed attempt. The lockout window restarts with every failure.
func (t *Throttle) Fail(ctx context.Context, username string) {
	if t == nil {
		return
	}
	key := throttlePrefix + username
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, t.lockout)
		return nil
	})
	if err != nil {
		t.logger.Warn("login throttle write", slog.Any("error", err))
	}
}

// Reset forgets the failures of username after a successful login.
func (t *Throttle) Reset(ctx context.Context, username string) {
	if t == nil {
		return
	}
	if err := t.client.Del(ctx, throttlePrefix+username).Err(); err != nil {
		t.logger.Warn("login throttle reset", slog.Any("error", err))
	}
}
