package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"account_backend/internal/feature/auth/domain"
	"account_backend/internal/feature/auth/domain/entity"
)

const (
	// SessionLifetime is the absolute lifetime of a session. It is never extended.
	SessionLifetime = 24 * time.Hour

	sessionIDBytes = 32
)

// TokenSigner turns a session identifier into a tamper-evident client credential and back.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform/jwt).
type TokenSigner interface {
	// Sign returns a credential carrying sessionID that expires at expiresAt.
	Sign(sessionID string, expiresAt time.Time) (string, error)
	// Parse verifies a credential and returns the session identifier it carries.
	Parse(token string) (string, error)
}

// SessionManager issues, checks and destroys login sessions.
type SessionManager struct {
	sessions SessionRepository
	signer   TokenSigner
	lifetime time.Duration
	now      func() time.Time
}

// NewSessionManager returns a SessionManager with the standard 24 hour lifetime.
func NewSessionManager(sessions SessionRepository, signer TokenSigner) *SessionManager {
	return &SessionManager{
		sessions: sessions,
		signer:   signer,
		lifetime: SessionLifetime,
		now:      time.Now,
	}
}

// Establish starts a session for userID. The session behind previous, if any,
// is destroyed first so a login never reuses the caller's old session.
func (m *SessionManager) Establish(ctx context.Context, userID uint, previous string) (*entity.SessionCredential, error) {
	if previous != "" {
		if err := m.Destroy(ctx, previous); err != nil {
			return nil, err
		}
	}

	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := m.now()
	session := &entity.Session{
		ID:        hashSessionID(sessionID),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.lifetime),
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	token, err := m.signer.Sign(sessionID, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}
	return &entity.SessionCredential{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Authorize resolves a credential to the user it was issued for.
// It returns domain.ErrUnauthenticated for any credential that does not
// reference a live session.
func (m *SessionManager) Authorize(ctx context.Context, credential string) (uint, error) {
	if credential == "" {
		return 0, domain.ErrUnauthenticated
	}
	sessionID, err := m.signer.Parse(credential)
	if err != nil {
		return 0, domain.ErrUnauthenticated
	}

	id := hashSessionID(sessionID)
	session, err := m.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return 0, domain.ErrUnauthenticated
		}
		return 0, fmt.Errorf("failed to find session: %w", err)
	}
	if session.IsExpiredAt(m.now()) {
		if err := m.sessions.Delete(ctx, id); err != nil {
			return 0, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return 0, domain.ErrUnauthenticated
	}
	return session.UserID, nil
}

// Destroy ends the session behind credential. Unknown or malformed
// credentials are ignored.
func (m *SessionManager) Destroy(ctx context.Context, credential string) error {
	if credential == "" {
		return nil
	}
	sessionID, err := m.signer.Parse(credential)
	if err != nil {
		return nil
	}
	if err := m.sessions.Delete(ctx, hashSessionID(sessionID)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DestroyAllForUser ends every session of userID.
func (m *SessionManager) DestroyAllForUser(ctx context.Context, userID uint) error {
	if err := m.sessions.DeleteAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

// PurgeExpired removes expired sessions and returns how many were removed.
func (m *SessionManager) PurgeExpired(ctx context.Context) (int64, error) {
	return m.sessions.DeleteExpired(ctx)
}

// generateSessionID returns a cryptographically random hex identifier.
func generateSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashSessionID is the storage key for a session identifier.
func hashSessionID(sessionID string) string {
	h := sha256.Sum256([]byte(sessionID))
	return hex.EncodeToString(h[:])
}
