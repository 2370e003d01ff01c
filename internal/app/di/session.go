// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "account_backend/internal/feature/auth/adapters"
	"account_backend/internal/feature/auth/usecase"
	"account_backend/internal/platform/config"
	infraredis "account_backend/internal/platform/redis"
	"account_backend/internal/platform/session"
)

// Session store names accepted by SESSION_STORE.
const (
	SessionStoreAuto  = "auto"
	SessionStoreRedis = "redis"
	SessionStoreSQL   = "sql"
)

// RedisConnector opens a Redis client.
type RedisConnector func(ctx context.Context, cfg infraredis.Config) (*redis.Client, error)

// NewSessionRepository picks the session store named by cfg.SessionStore.
// "redis" fails when Redis is unreachable; "auto" falls back to the SQL
// store. The returned client is nil unless Redis is in use and must be
// closed by the caller.
func NewSessionRepository(ctx context.Context, cfg config.Config, db *gorm.DB, connect RedisConnector) (usecase.SessionRepository, *redis.Client, error) {
	switch cfg.SessionStore {
	case SessionStoreSQL:
		return authadapters.NewSessionGorm(db), nil, nil
	case SessionStoreRedis, SessionStoreAuto:
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	if cfg.SessionStore == SessionStoreAuto && cfg.RedisHost == "" {
		slog.Info("REDIS_HOST not set; sessions stored in the database")
		return authadapters.NewSessionGorm(db), nil, nil
	}

	rdb, err := connect(ctx, infraredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		if cfg.SessionStore == SessionStoreRedis {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		slog.Warn("redis unavailable; sessions stored in the database", "error", err)
		return authadapters.NewSessionGorm(db), nil, nil
	}
	return session.NewSessionRedis(rdb, "session"), rdb, nil
}
