package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account_backend/internal/feature/auth/domain"
)

// fakeSigner marks tokens with a prefix instead of signing them.
type fakeSigner struct{}

func (fakeSigner) Sign(sessionID string, _ time.Time) (string, error) {
	return "signed." + sessionID, nil
}

func (fakeSigner) Parse(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "signed.")
	if !ok {
		return "", errors.New("bad signature")
	}
	return id, nil
}

func newTestManager() (*SessionManager, *memSessionRepo) {
	repo := newMemSessionRepo()
	return NewSessionManager(repo, fakeSigner{}), repo
}

func TestSessionManager_EstablishAndAuthorize(t *testing.T) {
	m, repo := newTestManager()
	ctx := context.Background()

	cred, err := m.Establish(ctx, 7, "")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(SessionLifetime), cred.ExpiresAt, time.Minute)
	assert.Equal(t, 1, repo.len())

	// The raw session id is never used as the storage key.
	rawID, _ := fakeSigner{}.Parse(cred.Token)
	_, err = repo.FindByID(ctx, rawID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	userID, err := m.Authorize(ctx, cred.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestSessionManager_Authorize_Rejects(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	for _, token := range []string{"", "forged", "signed.unknown"} {
		_, err := m.Authorize(ctx, token)
		assert.Same(t, domain.ErrUnauthenticated, err, "token %q", token)
	}
}

func TestSessionManager_Authorize_ExpiredSessionIsDeleted(t *testing.T) {
	m, repo := newTestManager()
	ctx := context.Background()

	cred, err := m.Establish(ctx, 7, "")
	require.NoError(t, err)

	// Activity does not extend the lifetime.
	start := time.Now()
	m.now = func() time.Time { return start.Add(SessionLifetime - time.Minute) }
	_, err = m.Authorize(ctx, cred.Token)
	require.NoError(t, err)

	m.now = func() time.Time { return start.Add(SessionLifetime + time.Second) }
	_, err = m.Authorize(ctx, cred.Token)
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.Zero(t, repo.len())
}

func TestSessionManager_Destroy(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	cred, err := m.Establish(ctx, 7, "")
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, cred.Token))
	_, err = m.Authorize(ctx, cred.Token)
	assert.ErrorIs(t, err, domain.ErrAuth, "a destroyed session cannot be reused")

	// Idempotent, including for garbage.
	assert.NoError(t, m.Destroy(ctx, cred.Token))
	assert.NoError(t, m.Destroy(ctx, "garbage"))
	assert.NoError(t, m.Destroy(ctx, ""))
}

func TestSessionManager_Establish_ReplacesPrevious(t *testing.T) {
	m, repo := newTestManager()
	ctx := context.Background()

	first, err := m.Establish(ctx, 7, "")
	require.NoError(t, err)
	second, err := m.Establish(ctx, 7, first.Token)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, 1, repo.len())
	_, err = m.Authorize(ctx, first.Token)
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestSessionManager_DestroyAllForUser(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	a, err := m.Establish(ctx, 7, "")
	require.NoError(t, err)
	b, err := m.Establish(ctx, 7, "")
	require.NoError(t, err)
	other, err := m.Establish(ctx, 8, "")
	require.NoError(t, err)

	require.NoError(t, m.DestroyAllForUser(ctx, 7))

	for _, tok := range []string{a.Token, b.Token} {
		_, err := m.Authorize(ctx, tok)
		assert.ErrorIs(t, err, domain.ErrAuth)
	}
	userID, err := m.Authorize(ctx, other.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(8), userID)
}

func TestSessionManager_PurgeExpired(t *testing.T) {
	m, repo := newTestManager()
	ctx := context.Background()

	m.now = func() time.Time { return time.Now().Add(-2 * SessionLifetime) }
	_, err := m.Establish(ctx, 7, "")
	require.NoError(t, err)
	m.now = time.Now
	_, err = m.Establish(ctx, 8, "")
	require.NoError(t, err)

	n, err := m.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, repo.len())
}
