package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"account_backend/internal/feature/auth/domain"
	"account_backend/internal/feature/auth/domain/entity"
)

// LinkOutcome tells how a federated login was resolved to an account.
type LinkOutcome int

const (
	// OutcomeExistingFederated means the federated identity was already linked.
	OutcomeExistingFederated LinkOutcome = iota + 1
	// OutcomeLinkedByEmail means an existing account with the same verified email was linked.
	OutcomeLinkedByEmail
	// OutcomeCreated means a new federated-only account was created.
	OutcomeCreated
)

// String returns the outcome name used in logs and metrics.
func (o LinkOutcome) String() string {
	switch o {
	case OutcomeExistingFederated:
		return "existing_federated"
	case OutcomeLinkedByEmail:
		return "linked_by_email"
	case OutcomeCreated:
		return "created"
	default:
		return "unknown"
	}
}

// LinkResult is the account a federated login resolved to.
type LinkResult struct {
	User    *entity.User
	Outcome LinkOutcome
}

// IsNewUser reports whether the account was created by this login.
func (r *LinkResult) IsNewUser() bool {
	return r.Outcome == OutcomeCreated
}

// IdentityLinker reconciles verified federated claims with stored accounts.
type IdentityLinker struct {
	users UserRepository
}

// NewIdentityLinker returns an IdentityLinker backed by users.
func NewIdentityLinker(users UserRepository) *IdentityLinker {
	return &IdentityLinker{users: users}
}

// Resolve finds or creates the account for claims. The cases are tried in order:
// an account already linked to the subject, then an account with the same email
// (linked only if the provider verified that email), then a new account.
func (l *IdentityLinker) Resolve(ctx context.Context, claims entity.FederatedClaims) (*LinkResult, error) {
	if strings.TrimSpace(claims.Email) == "" {
		return nil, domain.NewValidationError("email is required from the identity provider")
	}
	if claims.Subject == "" {
		return nil, domain.NewValidationError("federated subject is required")
	}

	user, err := l.users.FindByFederatedID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by federated id: %w", err)
	}
	if user != nil {
		return &LinkResult{User: user, Outcome: OutcomeExistingFederated}, nil
	}

	user, err = l.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if user != nil {
		if !claims.EmailVerified {
			slog.Warn("refused to link unverified federated email", "user_id", user.ID)
			return nil, domain.ErrUnverifiedFederatedEmail
		}
		linked, err := l.users.LinkFederatedIdentity(ctx, user.ID, claims.Subject, claims.AvatarURL)
		if err != nil {
			return nil, err
		}
		slog.Info("federated identity linked", "user_id", linked.ID)
		return &LinkResult{User: linked, Outcome: OutcomeLinkedByEmail}, nil
	}

	created, err := l.users.CreateWithFederatedIdentity(ctx, claims.Email, claims.Name, claims.Subject, claims.AvatarURL)
	if err != nil {
		return nil, err
	}
	slog.Info("federated user created", "user_id", created.ID)
	return &LinkResult{User: created, Outcome: OutcomeCreated}, nil
}
