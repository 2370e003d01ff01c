package entity

import "time"

// Session is a server-side login session.
// ID is the SHA-256 digest of the session identifier carried by the client.
type Session struct {
	ID        string
	UserID    uint
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpiredAt reports whether the session is expired at t.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// SessionCredential is what the client carries after a successful login.
type SessionCredential struct {
	Token     string
	ExpiresAt time.Time
}
