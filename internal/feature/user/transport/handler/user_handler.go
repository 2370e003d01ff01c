// Package handler provides the HTTP handlers of the user feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/auth/domain"
	"account_backend/internal/feature/auth/domain/entity"
	authdto "account_backend/internal/feature/auth/transport/http/dto"
	"account_backend/internal/feature/auth/transport/httperr"
	"account_backend/internal/feature/auth/transport/middleware"
	"account_backend/internal/feature/user/transport/http/dto"
	"account_backend/internal/platform/metrics"
)

// UserUsecase defines the profile operations.
// Following Go convention, interfaces are defined by the consumer (handler), not the provider (usecase).
type UserUsecase interface {
	List(ctx context.Context) ([]*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	Update(ctx context.Context, actorID, id uint, fields entity.ProfileUpdate) (*entity.User, error)
	Delete(ctx context.Context, actorID, id uint) error
}

// Recorder counts session events.
type Recorder interface {
	RecordSession(event string)
}

// UserHandler handles the /api/users endpoints. Every route expects
// middleware.RequireAuth in front of it.
type UserHandler struct {
	users    UserUsecase
	cookies  middleware.CookieConfig
	recorder Recorder
}

// NewUserHandler returns a UserHandler. recorder may be nil.
func NewUserHandler(users UserUsecase, cookies middleware.CookieConfig, recorder Recorder) *UserHandler {
	return &UserHandler{users: users, cookies: cookies, recorder: recorder}
}

// List returns every account.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		httperr.Write(c, "list users", err)
		return
	}
	res := make([]authdto.UserProfile, 0, len(users))
	for _, u := range users {
		res = append(res, authdto.NewUserProfile(u))
	}
	c.JSON(http.StatusOK, res)
}

// Get returns one account.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Write(c, "get user", err)
		return
	}
	c.JSON(http.StatusOK, authdto.NewUserProfile(user))
}

// Update changes the caller's own name and/or email.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, ok := middleware.UserID(c)
	if !ok {
		httperr.Write(c, "update user", domain.ErrUnauthenticated)
		return
	}
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update user request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, authdto.ErrorRes{Error: "invalid request"})
		return
	}
	user, err := h.users.Update(c.Request.Context(), actorID, id, req.ToProfileUpdate())
	if err != nil {
		httperr.Write(c, "update user", err)
		return
	}
	slog.Info("user updated", "user_id", user.ID)
	c.JSON(http.StatusOK, authdto.NewUserProfile(user))
}

// Delete removes the caller's own account, ends all its sessions and clears the cookie.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, ok := middleware.UserID(c)
	if !ok {
		httperr.Write(c, "delete user", domain.ErrUnauthenticated)
		return
	}
	if err := h.users.Delete(c.Request.Context(), actorID, id); err != nil {
		httperr.Write(c, "delete user", err)
		return
	}
	h.cookies.ClearSessionCookie(c)
	if h.recorder != nil {
		h.recorder.RecordSession(metrics.SessionDestroyed)
	}
	slog.Info("user deleted", "user_id", id)
	c.JSON(http.StatusOK, authdto.MessageRes{Message: "User deleted successfully"})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, authdto.ErrorRes{Error: "invalid user id"})
		return 0, false
	}
	return uint(id), true
}
