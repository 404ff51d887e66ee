package app

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the test so envconfig defaults apply.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func testKey() string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Repeat("k", 64)))
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetEnv(t, "APP_ENV", "LOG_LEVEL", "TOKEN_DURATION", "TOKEN_REFRESH_WINDOW")
	t.Setenv("TOKEN_KEY", testKey())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Len(t, cfg.TokenKey, 64)
	assert.Equal(t, 30*time.Minute, cfg.TokenDuration)
	assert.Equal(t, 10*time.Minute, cfg.TokenRefreshWindow)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TOKEN_KEY", testKey())
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TOKEN_DURATION", "1h")
	t.Setenv("TOKEN_REFRESH_WINDOW", "5m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.TokenDuration)
	assert.Equal(t, 5*time.Minute, cfg.TokenRefreshWindow)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing key", env: map[string]string{"TOKEN_KEY": ""}},
		{name: "padded key", env: map[string]string{"TOKEN_KEY": base64.URLEncoding.EncodeToString([]byte("short"))}},
		{name: "short key", env: map[string]string{"TOKEN_KEY": base64.RawURLEncoding.EncodeToString([]byte("short"))}},
		{name: "window too long", env: map[string]string{"TOKEN_KEY": testKey(), "TOKEN_DURATION": "10m", "TOKEN_REFRESH_WINDOW": "10m"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, "LOG_LEVEL", "TOKEN_DURATION", "TOKEN_REFRESH_WINDOW")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestTokenKeyIsRedacted(t *testing.T) {
	key := Base64URLKey("super-secret-key-material-000000")
	cfg := Config{TokenKey: key}

	assert.Equal(t, "[redacted]", key.String())
	assert.NotContains(t, fmt.Sprintf("%v %+v %#v", key, cfg, key), "super-secret")
	assert.NotContains(t, fmt.Sprint(slog.Any("key", key).Value.Resolve()), "super-secret")
}
