package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "info", cfg.LogLevel)

	assert.Equal(t, 90*24*time.Hour, cfg.ManageTokenTTL)
	assert.Equal(t, 150*time.Millisecond, cfg.ResendMinDuration)

	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 5, cfg.RateLimitCreateMax)
	assert.Equal(t, time.Hour, cfg.RateLimitCreateWindow)
	assert.Equal(t, 10, cfg.RateLimitManageMax)
	assert.Equal(t, time.Hour, cfg.RateLimitManageWindow)
	assert.Equal(t, 30, cfg.RateLimitViewMax)
	assert.Equal(t, 3, cfg.RateLimitResendMax)
	assert.Equal(t, 5, cfg.RateLimitAdminMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitAdminWindow)

	// Admin surface is disabled until a key hash is configured.
	assert.Empty(t, cfg.AdminAPIKeyHash)

	assert.Equal(t, 180*24*time.Hour, cfg.TokenPurgeCancelledAfter)
	assert.Equal(t, 10*time.Second, cfg.OutboxInterval)
	assert.Equal(t, 50, cfg.OutboxBatchSize)
	assert.Equal(t, 3, cfg.OutboxMaxRetries)

	assert.False(t, cfg.CORSEnabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "rsvp", cfg.MetricsNamespace)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MANAGE_TOKEN_TTL_DAYS", "30")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RESEND_MIN_DURATION_MS", "200")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 30*24*time.Hour, cfg.ManageTokenTTL)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, 200*time.Millisecond, cfg.ResendMinDuration)
}

func TestGetGinMode(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	assert.Equal(t, "debug", cfg.GetGinMode())

	cfg.LogLevel = "info"
	assert.Equal(t, "release", cfg.GetGinMode())

	cfg.LogLevel = "error"
	assert.Equal(t, "release", cfg.GetGinMode())
}
