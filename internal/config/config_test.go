// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "file", cfg.Storage.Provider)
	assert.Equal(t, 10*time.Second, cfg.Backend.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.Backend.OrderTimeout)
	assert.Equal(t, 30*24*time.Hour, cfg.Session.TokenExpiry)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_PROVIDER", "memory")
	t.Setenv("BACKEND_REQUEST_TIMEOUT", "15s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "memory", cfg.Storage.Provider)
	assert.Equal(t, 15*time.Second, cfg.Backend.RequestTimeout)
	assert.Equal(t, 50, cfg.Security.RateLimitPerMinute)
}

func TestValidateShortSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "too-short")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateUnknownStorageProvider(t *testing.T) {
	t.Setenv("STORAGE_PROVIDER", "postgres")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{}
	cfg.Redis.Host = "redis.internal"
	cfg.Redis.Port = "6380"

	assert.Equal(t, "redis.internal:6380", cfg.GetRedisAddr())
}
