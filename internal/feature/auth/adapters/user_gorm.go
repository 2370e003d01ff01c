// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"account_backend/internal/feature/auth/domain"
	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"
)

// userGorm is a GORM implementation of the UserRepository interface.
// Uniqueness of email and federated ID is enforced by the table's unique indexes.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// CreateWithPassword inserts a password-only user.
func (r *userGorm) CreateWithPassword(ctx context.Context, email, passwordHash, name string) (*entity.User, error) {
	u := &entity.User{
		Email:        email,
		PasswordHash: &passwordHash,
		Name:         name,
	}
	if err := r.create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailAlreadyRegistered.WithCause(err)
		}
		return nil, err
	}
	return u, nil
}

// CreateWithFederatedIdentity inserts a federated-only user.
// A collision is reported as ErrFederatedIdentityLinked when the subject is
// already stored and as ErrEmailAlreadyRegistered otherwise.
func (r *userGorm) CreateWithFederatedIdentity(ctx context.Context, email, name, federatedID string, avatarURL *string) (*entity.User, error) {
	u := &entity.User{
		Email:       email,
		Name:        name,
		FederatedID: &federatedID,
		AvatarURL:   avatarURL,
	}
	if err := r.create(ctx, u); err != nil {
		if !isUniqueViolation(err) {
			return nil, err
		}
		// The translated driver error does not name the index.
		owner, findErr := r.FindByFederatedID(ctx, federatedID)
		if findErr != nil {
			return nil, fmt.Errorf("failed to classify conflict: %w", findErr)
		}
		if owner != nil {
			return nil, domain.ErrFederatedIdentityLinked.WithCause(err)
		}
		return nil, domain.ErrEmailAlreadyRegistered.WithCause(err)
	}
	return u, nil
}

// create inserts u with its provider derived from the credentials it carries.
// Unique violations are returned untranslated for the caller to classify.
func (r *userGorm) create(ctx context.Context, u *entity.User) error {
	u.AuthProvider = u.DeriveAuthProvider()
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email. It returns nil when no user matches.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByFederatedID retrieves a user by federated subject. It returns nil when no user matches.
func (r *userGorm) FindByFederatedID(ctx context.Context, federatedID string) (*entity.User, error) {
	return r.first(ctx, "federated_id = ?", federatedID)
}

// FindByID retrieves a user by ID. It returns nil when no user matches.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userGorm) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// List returns every user ordered by ID.
func (r *userGorm) List(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// LinkFederatedIdentity sets the federated subject in a single statement.
// The avatar is kept when already present and the password hash is never touched.
func (r *userGorm) LinkFederatedIdentity(ctx context.Context, userID uint, federatedID string, avatarURL *string) (*entity.User, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"federated_id": federatedID,
			"auth_provider": gorm.Expr("CASE WHEN password_hash IS NULL THEN ? ELSE ? END",
				string(entity.ProviderFederated), string(entity.ProviderBoth)),
			"avatar_url": gorm.Expr("COALESCE(avatar_url, ?)", avatarURL),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, domain.ErrFederatedIdentityLinked.WithCause(result.Error)
		}
		return nil, fmt.Errorf("failed to link federated identity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.mustFind(ctx, userID)
}

// UpdateProfile writes the non-nil fields of fields.
func (r *userGorm) UpdateProfile(ctx context.Context, id uint, fields entity.ProfileUpdate) (*entity.User, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Email != nil {
		updates["email"] = *fields.Email
	}

	result := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, domain.ErrEmailAlreadyRegistered.WithCause(result.Error)
		}
		return nil, fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.mustFind(ctx, id)
}

// Delete removes a user.
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userGorm) mustFind(ctx context.Context, id uint) (*entity.User, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
