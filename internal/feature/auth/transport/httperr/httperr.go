// Package httperr maps classified domain errors onto HTTP responses.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/auth/domain"
	"account_backend/internal/feature/auth/transport/http/dto"
)

const serverErrorMessage = "server error"

// Status returns the HTTP status and client-safe message for err.
// Conflicts are reported as 400 so registration and profile clients see one
// status for every rejected input.
func Status(err error) (int, string) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		return http.StatusInternalServerError, serverErrorMessage
	}
	switch {
	case errors.Is(derr, domain.ErrValidation), errors.Is(derr, domain.ErrConflict):
		return http.StatusBadRequest, derr.Error()
	case errors.Is(derr, domain.ErrAuth):
		return http.StatusUnauthorized, derr.Error()
	case errors.Is(derr, domain.ErrForbidden):
		return http.StatusForbidden, derr.Error()
	case errors.Is(derr, domain.ErrNotFound):
		return http.StatusNotFound, derr.Error()
	default:
		return http.StatusInternalServerError, serverErrorMessage
	}
}

// Write sends the error response for err. Server errors are logged with
// their cause; the client only sees a generic message.
func Write(c *gin.Context, op string, err error) {
	status, message := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
	} else {
		slog.Warn(op+" rejected", "error", message, "status", status, "remote_addr", c.ClientIP())
	}
	c.JSON(status, dto.ErrorRes{Error: message})
}
