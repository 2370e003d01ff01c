package usecase

import (
	"context"

	"account_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
//
// Lookups return (nil, nil) when nothing matches. Create methods and
// LinkFederatedIdentity return domain.ErrEmailAlreadyRegistered or
// domain.ErrFederatedIdentityLinked when the storage layer rejects a duplicate.
type UserRepository interface {
	// CreateWithPassword persists a password-only user.
	CreateWithPassword(ctx context.Context, email, passwordHash, name string) (*entity.User, error)

	// CreateWithFederatedIdentity persists a federated-only user.
	CreateWithFederatedIdentity(ctx context.Context, email, name, federatedID string, avatarURL *string) (*entity.User, error)

	// FindByEmail retrieves a user by exact email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByFederatedID retrieves a user by federated subject.
	FindByFederatedID(ctx context.Context, federatedID string) (*entity.User, error)

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// LinkFederatedIdentity attaches a federated subject to an existing user.
	// The avatar is only written when the user has none.
	LinkFederatedIdentity(ctx context.Context, userID uint, federatedID string, avatarURL *string) (*entity.User, error)
}
