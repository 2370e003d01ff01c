// Package router assembles the gin engine.
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "account_backend/internal/feature/auth/transport/handler"
	"account_backend/internal/feature/auth/transport/middleware"
	userhandler "account_backend/internal/feature/user/transport/handler"
	"account_backend/internal/platform/http/handler"
	"account_backend/internal/shared/ratelimiter"
)

// Deps are the components the router mounts.
type Deps struct {
	Auth     *authhandler.AuthHandler
	Users    *userhandler.UserHandler
	Sessions middleware.SessionAuthorizer
	DB       handler.Pinger
	Metrics  http.Handler
	Limiter  *ratelimiter.RateLimiter

	// CORSAllowedOrigins enables credentialed CORS for the listed origins.
	CORSAllowedOrigins []string
	// TrustedProxies may set X-Forwarded-For. Empty means the client IP is
	// always the TCP peer address.
	TrustedProxies []string
}

// NewRouter builds the engine. It fails when a trusted proxy entry is not an IP or CIDR.
func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.Default()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	if len(d.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	health := handler.Health(d.DB)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	requireAuth := middleware.RequireAuth(d.Sessions)

	auth := r.Group("/api/auth")
	{
		// Credential routes are throttled per client IP.
		credential := auth.Group("")
		if d.Limiter != nil {
			credential.Use(d.Limiter.Middleware())
		}
		credential.POST("/register", d.Auth.Register)
		credential.POST("/login", d.Auth.Login)
		credential.POST("/federated-login", d.Auth.FederatedLogin)

		auth.GET("/identity-provider-client-id", d.Auth.IdentityProviderClientID)
		auth.POST("/logout", requireAuth, d.Auth.Logout)
		auth.GET("/me", requireAuth, d.Auth.Me)
	}

	users := r.Group("/api/users")
	users.Use(requireAuth)
	{
		users.GET("", d.Users.List)
		users.GET("/:id", d.Users.Get)
		users.PUT("/:id", d.Users.Update)
		users.DELETE("/:id", d.Users.Delete)
	}

	r.GET("/login", authhandler.LoginPage)
	r.GET("/register", authhandler.RegisterPage)
	r.GET("/dashboard", middleware.RequireAuthPage(d.Sessions, "/login"), authhandler.DashboardPage)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})

	return r, nil
}
