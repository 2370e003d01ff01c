package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"account_backend/internal/feature/auth/domain"
	"account_backend/internal/feature/auth/domain/entity"
)

func avatar(s string) *string { return &s }

func TestIdentityLinker_Resolve_ExistingFederated(t *testing.T) {
	repo := newMemUserRepo()
	ctx := context.Background()
	existing, err := repo.CreateWithFederatedIdentity(ctx, "alice@example.com", "Alice", "g-1", nil)
	require.NoError(t, err)

	// The subject wins even when the provider now reports another email.
	res, err := NewIdentityLinker(repo).Resolve(ctx, entity.FederatedClaims{
		Subject: "g-1", Email: "alice@new.example.com", EmailVerified: false, Name: "Alice",
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeExistingFederated, res.Outcome)
	assert.False(t, res.IsNewUser())
	assert.Equal(t, existing.ID, res.User.ID)
	assert.Equal(t, 1, repo.count())
}

func TestIdentityLinker_Resolve_LinksVerifiedEmail(t *testing.T) {
	repo := newMemUserRepo()
	ctx := context.Background()
	a := NewPasswordAuthenticator(repo, bcrypt.MinCost)
	pw, err := a.Register(ctx, "alice@example.com", "secret1", "Alice")
	require.NoError(t, err)

	res, err := NewIdentityLinker(repo).Resolve(ctx, entity.FederatedClaims{
		Subject: "g-1", Email: "alice@example.com", EmailVerified: true, Name: "Alice G", AvatarURL: avatar("https://example.com/a.png"),
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeLinkedByEmail, res.Outcome)
	assert.False(t, res.IsNewUser())
	assert.Equal(t, pw.ID, res.User.ID)
	assert.Equal(t, entity.ProviderBoth, res.User.AuthProvider)
	assert.Equal(t, "Alice", res.User.Name, "display name is not overwritten")
	require.NotNil(t, res.User.AvatarURL)
	assert.Equal(t, 1, repo.count())

	// Password login keeps working after linking.
	_, err = a.Login(ctx, "alice@example.com", "secret1")
	assert.NoError(t, err)
}

func TestIdentityLinker_Resolve_KeepsExistingAvatar(t *testing.T) {
	repo := newMemUserRepo()
	ctx := context.Background()
	u, err := repo.CreateWithPassword(ctx, "alice@example.com", "hash", "Alice")
	require.NoError(t, err)
	repo.users[u.ID].AvatarURL = avatar("https://example.com/mine.png")

	res, err := NewIdentityLinker(repo).Resolve(ctx, entity.FederatedClaims{
		Subject: "g-1", Email: "alice@example.com", EmailVerified: true, AvatarURL: avatar("https://example.com/google.png"),
	})

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/mine.png", *res.User.AvatarURL)
}

func TestIdentityLinker_Resolve_RefusesUnverifiedEmail(t *testing.T) {
	repo := newMemUserRepo()
	ctx := context.Background()
	_, err := repo.CreateWithPassword(ctx, "alice@example.com", "hash", "Alice")
	require.NoError(t, err)

	res, err := NewIdentityLinker(repo).Resolve(ctx, entity.FederatedClaims{
		Subject: "g-attacker", Email: "alice@example.com", EmailVerified: false,
	})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	linked, _ := repo.FindByFederatedID(ctx, "g-attacker")
	assert.Nil(t, linked, "account must not be linked")
}

func TestIdentityLinker_Resolve_CreatesAccount(t *testing.T) {
	repo := newMemUserRepo()
	ctx := context.Background()

	res, err := NewIdentityLinker(repo).Resolve(ctx, entity.FederatedClaims{
		Subject: "g-2", Email: "new@example.com", EmailVerified: false, Name: "New", AvatarURL: avatar("https://example.com/n.png"),
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)
	assert.True(t, res.IsNewUser())
	assert.Equal(t, entity.ProviderFederated, res.User.AuthProvider)
	assert.False(t, res.User.HasPassword())
	assert.Equal(t, "g-2", *res.User.FederatedID)

	// The next login with the same subject finds the account.
	again, err := NewIdentityLinker(repo).Resolve(ctx, entity.FederatedClaims{Subject: "g-2", Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeExistingFederated, again.Outcome)
	assert.Equal(t, res.User.ID, again.User.ID)
}

func TestIdentityLinker_Resolve_Validation(t *testing.T) {
	repo := newMemUserRepo()
	l := NewIdentityLinker(repo)

	_, err := l.Resolve(context.Background(), entity.FederatedClaims{Subject: "g-1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "email is required from the identity provider", err.Error())

	_, err = l.Resolve(context.Background(), entity.FederatedClaims{Email: "a@example.com"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, repo.count())
}

func TestLinkOutcome_String(t *testing.T) {
	assert.Equal(t, "existing_federated", OutcomeExistingFederated.String())
	assert.Equal(t, "linked_by_email", OutcomeLinkedByEmail.String())
	assert.Equal(t, "created", OutcomeCreated.String())
	assert.Equal(t, "unknown", LinkOutcome(0).String())
}
