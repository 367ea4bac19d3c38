package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	env := map[string]string{
		"VILLAINS_PRIMARY.ENV":                         "development",
		"VILLAINS_SERVER.PORT":                         "9000",
		"VILLAINS_SERVER.READ_TIMEOUT":                 "30",
		"VILLAINS_SERVER.WRITE_TIMEOUT":                "30",
		"VILLAINS_SERVER.IDLE_TIMEOUT":                 "60",
		"VILLAINS_SERVER.CORS_ALLOWED_ORIGINS":         "http://localhost:3000, https://villains.example.com",
		"VILLAINS_DATABASE.HOST":                       "localhost",
		"VILLAINS_DATABASE.PORT":                       "5432",
		"VILLAINS_DATABASE.USER":                       "disneyvillains",
		"VILLAINS_DATABASE.PASSWORD":                   "S0EV1L!",
		"VILLAINS_DATABASE.NAME":                       "disney",
		"VILLAINS_DATABASE.SSL_MODE":                   "disable",
		"VILLAINS_DATABASE.MAX_OPEN_CONNS":             "10",
		"VILLAINS_DATABASE.MAX_IDLE_CONNS":             "5",
		"VILLAINS_DATABASE.CONN_MAX_LIFETIME":          "300",
		"VILLAINS_DATABASE.CONN_MAX_IDLE_TIME":         "60",
		"VILLAINS_REDIS.ADDRESS":                       "localhost:6379",
		"VILLAINS_OBSERVABILITY.LOGGING.LEVEL":         "debug",
		"VILLAINS_OBSERVABILITY.LOGGING.FORMAT":        "console",
		"VILLAINS_OBSERVABILITY.HEALTH_CHECKS.TIMEOUT": "2s",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "S0EV1L!", cfg.Database.Password)
	assert.Equal(t, []string{"http://localhost:3000", "https://villains.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Zero(t, cfg.Server.RateLimit)
	assert.False(t, cfg.Auth.ProtectWrites)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "console", cfg.Observability.Logging.Format)
	assert.Equal(t, 2*time.Second, cfg.Observability.HealthChecks.Timeout)
	// Untouched defaults survive a partial override.
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.True(t, cfg.Observability.HealthCheckEnabled("database"))
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VILLAINS_DATABASE.HOST", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoad_ProtectWritesNeedsSecretKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VILLAINS_AUTH.PROTECT_WRITES", "true")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("VILLAINS_AUTH.SECRET_KEY", "sk_test_123")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Auth.ProtectWrites)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VILLAINS_OBSERVABILITY.LOGGING.LEVEL", "loud")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	tests := []struct {
		env, level, want string
	}{
		{"production", "", "info"},
		{"development", "", "debug"},
		{"production", "warn", "warn"},
		{"local", "error", "error"},
	}
	for _, tt := range tests {
		c := &ObservabilityConfig{Environment: tt.env, Logging: LoggingConfig{Level: tt.level}}
		assert.Equal(t, tt.want, c.GetLogLevel(), "env=%s level=%q", tt.env, tt.level)
	}
}

func TestHealthCheckEnabled(t *testing.T) {
	c := DefaultObservabilityConfig()
	assert.True(t, c.HealthCheckEnabled("redis"))
	assert.False(t, c.HealthCheckEnabled("kafka"))

	c.HealthChecks.Enabled = false
	assert.False(t, c.HealthCheckEnabled("database"))
}
