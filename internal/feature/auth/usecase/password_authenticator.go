package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"account_backend/internal/feature/auth/domain"
	"account_backend/internal/feature/auth/domain/entity"
)

// dummyPasswordHash is compared when there is no usable hash so that a
// missing account takes as long to reject as a wrong password.
//
//nolint:gosec // G101: not a credential, it never matches any password.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// PasswordAuthenticator registers and authenticates password accounts.
type PasswordAuthenticator struct {
	users UserRepository
	cost  int
}

// NewPasswordAuthenticator returns a PasswordAuthenticator hashing with the given bcrypt cost.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost (about 100ms per hash).
func NewPasswordAuthenticator(users UserRepository, cost int) *PasswordAuthenticator {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordAuthenticator{users: users, cost: cost}
}

// Register creates a password-only account.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, password, name string) (*entity.User, error) {
	if email == "" || password == "" || strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("all fields are required")
	}
	if !ValidEmail(email) {
		return nil, domain.NewValidationError("invalid email format")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.NewValidationError("password must be at most 72 bytes")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The unique index on email decides concurrent registrations.
	return a.users.CreateWithPassword(ctx, email, string(hashed), name)
}

// Login checks an email and password pair and returns the account on success.
// Every failure other than missing input is ErrInvalidCredentials.
func (a *PasswordAuthenticator) Login(ctx context.Context, email, password string) (*entity.User, error) {
	if email == "" || password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}

	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash := dummyPasswordHash
	if user != nil && user.HasPassword() {
		passwordHash = *user.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if user == nil || !user.HasPassword() || compareErr != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
