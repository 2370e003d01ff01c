package usecase

import (
	"context"

	"account_backend/internal/feature/auth/domain/entity"
)

// UserRepository is the profile view of the user store.
// Lookups return (nil, nil) when nothing matches; UpdateProfile and Delete
// return domain.ErrUserNotFound for a missing row.
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uint, fields entity.ProfileUpdate) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
}

// SessionRevoker ends every session of a user.
type SessionRevoker interface {
	DestroyAllForUser(ctx context.Context, userID uint) error
}
