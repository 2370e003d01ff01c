package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"account_backend/internal/app/di"
	"account_backend/internal/app/router"
	authadapters "account_backend/internal/feature/auth/adapters"
	authhandler "account_backend/internal/feature/auth/transport/handler"
	"account_backend/internal/feature/auth/transport/middleware"
	authusecase "account_backend/internal/feature/auth/usecase"
	userhandler "account_backend/internal/feature/user/transport/handler"
	userusecase "account_backend/internal/feature/user/usecase"
	"account_backend/internal/platform/config"
	infradb "account_backend/internal/platform/db"
	jwtsign "account_backend/internal/platform/jwt"
	"account_backend/internal/platform/logger"
	"account_backend/internal/platform/metrics"
	infraredis "account_backend/internal/platform/redis"
	"account_backend/internal/shared/ratelimiter"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger.SetupDefault(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(infradb.Config{
		Driver:      cfg.DBDriver,
		Path:        cfg.DBPath,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()
	if cfg.RunMigrations {
		if err := infradb.Migrate(db); err != nil {
			return err
		}
	}

	// Session store (Redis when available)
	sessionRepo, rdb, err := di.NewSessionRepository(ctx, cfg, db, infraredis.NewRedisClient)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	verifier, err := di.NewFederatedVerifier(ctx, cfg)
	if err != nil {
		return err
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)

	// Usecase
	sessions := authusecase.NewSessionManager(sessionRepo, jwtsign.NewSigner(cfg.SessionSecret))
	passwords := authusecase.NewPasswordAuthenticator(userRepo, cfg.BcryptCost)
	linker := authusecase.NewIdentityLinker(userRepo)
	usersUC := userusecase.NewUserUsecase(userRepo, sessions)

	if n, err := sessions.PurgeExpired(ctx); err != nil {
		slog.Warn("failed to purge expired sessions", "error", err)
	} else if n > 0 {
		slog.Info("purged expired sessions", "count", n)
	}

	// Handler
	collector := metrics.NewCollector()
	cookies := middleware.CookieConfig{Secure: cfg.CookieSecure}
	opts := []authhandler.Option{authhandler.WithRecorder(collector)}
	if verifier != nil {
		opts = append(opts, authhandler.WithFederatedLogin(cfg.GoogleClientID, verifier))
	} else {
		slog.Info("GOOGLE_CLIENT_ID not set; federated login disabled")
	}
	authH := authhandler.NewAuthHandler(passwords, linker, sessions, userRepo, cookies, opts...)
	userH := userhandler.NewUserHandler(usersUC, cookies, collector)

	var limiter *ratelimiter.RateLimiter
	if cfg.LoginRatePerMinute > 0 {
		limiter = ratelimiter.NewRateLimiter(cfg.LoginRatePerMinute)
	}

	r, err := router.NewRouter(router.Deps{
		Auth:               authH,
		Users:              userH,
		Sessions:           sessions,
		DB:                 sqlDB,
		Metrics:            collector.Handler(),
		Limiter:            limiter,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		TrustedProxies:     cfg.TrustedProxies,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "federated_login", cfg.FederatedEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
