package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearEnv blanks every variable LoadFromEnv reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "RUN_MIGRATIONS",
		"SESSION_SECRET", "SESSION_STORE", "COOKIE_SECURE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD",
		"GOOGLE_CLIENT_ID", "FEDERATED_VERIFY_TIMEOUT", "BCRYPT_COST",
		"CORS_ALLOWED_ORIGINS", "TRUSTED_PROXIES", "LOGIN_RATE_PER_MINUTE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadFromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "./data/database.sqlite", cfg.DBPath)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
	assert.Equal(t, "auto", cfg.SessionStore)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.False(t, cfg.FederatedEnabled())
	assert.Equal(t, 10*time.Second, cfg.FederatedVerifyTimeout)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, 20, cfg.LoginRatePerMinute)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("GOOGLE_CLIENT_ID", " client-123.apps.googleusercontent.com ")
	t.Setenv("FEDERATED_VERIFY_TIMEOUT", "3s")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.5")
	t.Setenv("LOGIN_RATE_PER_MINUTE", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadFromEnv()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.DatabaseURL)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Equal(t, "redis", cfg.SessionStore)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "client-123.apps.googleusercontent.com", cfg.GoogleClientID)
	assert.True(t, cfg.FederatedEnabled())
	assert.Equal(t, 3*time.Second, cfg.FederatedVerifyTimeout)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.5"}, cfg.TrustedProxies)
	assert.Equal(t, 5, cfg.LoginRatePerMinute)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadFromEnv_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("RUN_MIGRATIONS", "maybe")
	t.Setenv("BCRYPT_COST", "ten")
	t.Setenv("FEDERATED_VERIFY_TIMEOUT", "-1s")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := LoadFromEnv()

	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 10*time.Second, cfg.FederatedVerifyTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}
