// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/auth/domain"
	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/transport/http/dto"
	"account_backend/internal/feature/auth/transport/httperr"
	"account_backend/internal/feature/auth/transport/middleware"
	"account_backend/internal/feature/auth/usecase"
	"account_backend/internal/platform/metrics"
)

// Attempt outcomes besides the link outcomes of a federated login.
const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// PasswordAuthenticator registers and authenticates password accounts.
// Following Go convention, interfaces are defined by the consumer (handler), not the provider (usecase).
type PasswordAuthenticator interface {
	Register(ctx context.Context, email, password, name string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, error)
}

// FederatedVerifier verifies identity provider tokens.
type FederatedVerifier interface {
	Verify(ctx context.Context, token string) (*entity.FederatedClaims, error)
}

// IdentityLinker resolves verified claims to an account.
type IdentityLinker interface {
	Resolve(ctx context.Context, claims entity.FederatedClaims) (*usecase.LinkResult, error)
}

// SessionManager issues and ends login sessions.
type SessionManager interface {
	Establish(ctx context.Context, userID uint, previous string) (*entity.SessionCredential, error)
	Destroy(ctx context.Context, credential string) error
}

// UserFinder loads the current user's profile.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// Recorder counts authentication attempts and session events.
type Recorder interface {
	RecordAuthAttempt(method, outcome string)
	RecordSession(event string)
}

type nopRecorder struct{}

func (nopRecorder) RecordAuthAttempt(string, string) {}
func (nopRecorder) RecordSession(string)             {}

// AuthHandler handles the /api/auth endpoints.
type AuthHandler struct {
	passwords PasswordAuthenticator
	linker    IdentityLinker
	sessions  SessionManager
	users     UserFinder
	cookies   middleware.CookieConfig
	recorder  Recorder

	clientID string
	verifier FederatedVerifier
}

// Option customizes an AuthHandler.
type Option func(*AuthHandler)

// WithFederatedLogin enables federated login for clientID. An empty clientID
// or a nil verifier leaves it disabled.
func WithFederatedLogin(clientID string, verifier FederatedVerifier) Option {
	return func(h *AuthHandler) {
		h.clientID = clientID
		h.verifier = verifier
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(h *AuthHandler) {
		if r != nil {
			h.recorder = r
		}
	}
}

// NewAuthHandler returns an AuthHandler. Federated login is off unless
// WithFederatedLogin is given.
func NewAuthHandler(passwords PasswordAuthenticator, linker IdentityLinker, sessions SessionManager,
	users UserFinder, cookies middleware.CookieConfig, opts ...Option) *AuthHandler {
	h := &AuthHandler{
		passwords: passwords,
		linker:    linker,
		sessions:  sessions,
		users:     users,
		cookies:   cookies,
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *AuthHandler) federatedEnabled() bool {
	return h.clientID != "" && h.verifier != nil
}

// Register creates a password account. It does not log the user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}
	user, err := h.passwords.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.recorder.RecordAuthAttempt(metrics.MethodRegister, outcomeOf(err))
		httperr.Write(c, "register", err)
		return
	}
	h.recorder.RecordAuthAttempt(metrics.MethodRegister, outcomeSuccess)
	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.RegisterRes{
		Message: "Registration successful",
		User:    dto.NewUserSummary(user),
	})
}

// Login checks email and password and starts a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}
	user, err := h.passwords.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.recorder.RecordAuthAttempt(metrics.MethodPassword, outcomeOf(err))
		httperr.Write(c, "login", err)
		return
	}
	if !h.startSession(c, user.ID) {
		return
	}
	h.recorder.RecordAuthAttempt(metrics.MethodPassword, outcomeSuccess)
	slog.Info("user logged in", "user_id", user.ID, "method", metrics.MethodPassword, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.NewUserSummary(user))
}

// IdentityProviderClientID exposes the configured client id, or null when
// federated login is disabled.
func (h *AuthHandler) IdentityProviderClientID(c *gin.Context) {
	var res dto.ClientIDRes
	if h.federatedEnabled() {
		id := h.clientID
		res.ClientID = &id
	}
	c.JSON(http.StatusOK, res)
}

// FederatedLogin verifies an identity provider token, resolves it to an
// account and starts a session. It answers 201 when the account was created.
func (h *AuthHandler) FederatedLogin(c *gin.Context) {
	if !h.federatedEnabled() {
		httperr.Write(c, "federated login", domain.ErrFederatedNotConfigured)
		return
	}
	var req dto.FederatedLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("federated login request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}
	if strings.TrimSpace(req.Credential) == "" {
		httperr.Write(c, "federated login", domain.NewValidationError("credential is required"))
		return
	}

	ctx := c.Request.Context()
	claims, err := h.verifier.Verify(ctx, req.Credential)
	if err != nil {
		h.recorder.RecordAuthAttempt(metrics.MethodFederated, outcomeOf(err))
		httperr.Write(c, "federated login", err)
		return
	}
	result, err := h.linker.Resolve(ctx, *claims)
	if err != nil {
		h.recorder.RecordAuthAttempt(metrics.MethodFederated, outcomeOf(err))
		httperr.Write(c, "federated login", err)
		return
	}
	if !h.startSession(c, result.User.ID) {
		return
	}

	var status int
	switch result.Outcome {
	case usecase.OutcomeCreated:
		status = http.StatusCreated
	case usecase.OutcomeExistingFederated, usecase.OutcomeLinkedByEmail:
		status = http.StatusOK
	default:
		slog.Error("unknown link outcome", "outcome", int(result.Outcome))
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "server error"})
		return
	}
	h.recorder.RecordAuthAttempt(metrics.MethodFederated, result.Outcome.String())
	slog.Info("user logged in", "user_id", result.User.ID, "method", metrics.MethodFederated,
		"outcome", result.Outcome.String(), "remote_addr", c.ClientIP())
	c.JSON(status, dto.FederatedLoginRes{
		UserSummary: dto.NewUserSummary(result.User),
		IsNewUser:   result.IsNewUser(),
	})
}

// Logout ends the caller's session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c.Request.Context(), middleware.SessionCredential(c)); err != nil {
		slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "failed to logout"})
		return
	}
	h.cookies.ClearSessionCookie(c)
	h.recorder.RecordSession(metrics.SessionDestroyed)
	userID, _ := middleware.UserID(c)
	slog.Info("user logged out", "user_id", userID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Logged out successfully"})
}

// Me returns the profile of the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httperr.Write(c, "me", domain.ErrUnauthenticated)
		return
	}
	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		httperr.Write(c, "me", err)
		return
	}
	if user == nil {
		httperr.Write(c, "me", domain.ErrUserNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserProfile(user))
}

// startSession replaces any session the client already holds and sets the
// cookie. It writes the error response itself and reports false on failure.
func (h *AuthHandler) startSession(c *gin.Context, userID uint) bool {
	cred, err := h.sessions.Establish(c.Request.Context(), userID, middleware.SessionCredential(c))
	if err != nil {
		httperr.Write(c, "establish session", err)
		return false
	}
	h.cookies.SetSessionCookie(c, cred.Token, cred.ExpiresAt)
	h.recorder.RecordSession(metrics.SessionEstablished)
	return true
}

func outcomeOf(err error) string {
	if status, _ := httperr.Status(err); status == http.StatusInternalServerError {
		return outcomeError
	}
	return outcomeRejected
}
