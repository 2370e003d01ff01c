// Package config loads application settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// devSessionSecret is only used when SESSION_SECRET is unset.
const devSessionSecret = "dev-secret"

// Config holds the settings read once at startup.
type Config struct {
	Port string

	// Database
	DBDriver      string // "sqlite" or "postgres"
	DBPath        string
	DatabaseURL   string
	RunMigrations bool

	// Session
	SessionSecret string
	SessionStore  string // "auto", "redis" or "sql"
	CookieSecure  bool

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Federated login; empty GoogleClientID disables it.
	GoogleClientID         string
	FederatedVerifyTimeout time.Duration

	BcryptCost         int
	CORSAllowedOrigins []string
	LoginRatePerMinute int
	LogLevel           slog.Level

	// TrustedProxies lists proxy IPs/CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string
}

// FederatedEnabled reports whether an identity provider client id is configured.
func (c Config) FederatedEnabled() bool {
	return c.GoogleClientID != ""
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return LoadFromEnv()
}

// LoadFromEnv builds a Config from environment variables, applying defaults.
func LoadFromEnv() Config {
	cfg := Config{
		Port:                   getEnv("PORT", "8080"),
		DBDriver:               strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:                 getEnv("DB_PATH", "./data/database.sqlite"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		RunMigrations:          getBool("RUN_MIGRATIONS", true),
		SessionSecret:          os.Getenv("SESSION_SECRET"),
		SessionStore:           strings.ToLower(getEnv("SESSION_STORE", "auto")),
		CookieSecure:           getBool("COOKIE_SECURE", true),
		RedisHost:              os.Getenv("REDIS_HOST"),
		RedisPort:              getEnv("REDIS_PORT", "6379"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		GoogleClientID:         strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		FederatedVerifyTimeout: getDuration("FEDERATED_VERIFY_TIMEOUT", 10*time.Second),
		BcryptCost:             getInt("BCRYPT_COST", 10),
		CORSAllowedOrigins:     splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		TrustedProxies:         splitList(os.Getenv("TRUSTED_PROXIES")),
		LoginRatePerMinute:     getInt("LOGIN_RATE_PER_MINUTE", 20),
		LogLevel:               parseLevel(os.Getenv("LOG_LEVEL")),
	}

	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET is not set. Set a strong secret in production.")
		cfg.SessionSecret = devSessionSecret
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v)
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLevel(v string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return slog.LevelInfo
	}
	return level
}
