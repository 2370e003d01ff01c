// Package middleware provides gin middleware that gates requests on a login session.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/auth/domain"
)

const (
	// ContextUserID is the gin context key holding the authenticated user ID.
	ContextUserID = "userID"
	// ContextSessionCredential is the gin context key holding the raw session credential.
	ContextSessionCredential = "sessionCredential"
)

// SessionAuthorizer resolves a session credential to a user ID.
type SessionAuthorizer interface {
	Authorize(ctx context.Context, credential string) (uint, error)
}

// RequireAuth rejects requests without a live session with 401 JSON.
// It is meant for API routes used by programmatic clients.
func RequireAuth(sessions SessionAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, credential, err := authorize(c, sessions)
		if err != nil {
			if errors.Is(err, domain.ErrAuth) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
				return
			}
			slog.Error("session lookup failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextSessionCredential, credential)
		c.Next()
	}
}

// RequireAuthPage redirects browser navigations without a live session to loginPath.
func RequireAuthPage(sessions SessionAuthorizer, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, credential, err := authorize(c, sessions)
		if err != nil {
			if !errors.Is(err, domain.ErrAuth) {
				slog.Error("session lookup failed", "error", err, "remote_addr", c.ClientIP())
			}
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextSessionCredential, credential)
		c.Next()
	}
}

func authorize(c *gin.Context, sessions SessionAuthorizer) (uint, string, error) {
	credential := SessionCredential(c)
	userID, err := sessions.Authorize(c.Request.Context(), credential)
	if err != nil {
		return 0, "", err
	}
	return userID, credential, nil
}

// UserID returns the authenticated user ID set by RequireAuth or RequireAuthPage.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
