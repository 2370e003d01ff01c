// Package usecase implements profile management for authenticated users.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"account_backend/internal/feature/auth/domain"
	"account_backend/internal/feature/auth/domain/entity"
	authusecase "account_backend/internal/feature/auth/usecase"
)

// UserUsecase lists, reads, updates and deletes accounts.
// Only the owner may modify or delete an account.
type UserUsecase struct {
	users    UserRepository
	sessions SessionRevoker
}

// NewUserUsecase returns a UserUsecase.
func NewUserUsecase(users UserRepository, sessions SessionRevoker) *UserUsecase {
	return &UserUsecase{users: users, sessions: sessions}
}

// List returns every account.
func (u *UserUsecase) List(ctx context.Context) ([]*entity.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get returns one account or domain.ErrUserNotFound.
func (u *UserUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Update changes the name and/or email of the actor's own account.
// A nil field is left unchanged; a present but blank field is rejected.
func (u *UserUsecase) Update(ctx context.Context, actorID, id uint, fields entity.ProfileUpdate) (*entity.User, error) {
	if actorID != id {
		return nil, domain.NewForbiddenError("you can only update your own account")
	}
	if fields.Name != nil && strings.TrimSpace(*fields.Name) == "" {
		return nil, domain.NewValidationError("name cannot be empty")
	}
	if fields.Email != nil && strings.TrimSpace(*fields.Email) == "" {
		return nil, domain.NewValidationError("email cannot be empty")
	}

	existing, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	email := existing.Email
	if fields.Email != nil {
		email = *fields.Email
	}
	if !authusecase.ValidEmail(email) {
		return nil, domain.NewValidationError("invalid email format")
	}
	if fields.Name == nil && fields.Email == nil {
		return existing, nil
	}

	// A duplicate email surfaces from the unique index as a conflict.
	return u.users.UpdateProfile(ctx, id, fields)
}

// Delete ends all sessions of the actor's own account, then removes it.
// A session store failure leaves the account in place so the call can be retried.
func (u *UserUsecase) Delete(ctx context.Context, actorID, id uint) error {
	if actorID != id {
		return domain.NewForbiddenError("you can only delete your own account")
	}
	if _, err := u.Get(ctx, id); err != nil {
		return err
	}
	if err := u.sessions.DestroyAllForUser(ctx, id); err != nil {
		return fmt.Errorf("failed to end sessions: %w", err)
	}
	return u.users.Delete(ctx, id)
}
