package dto

import (
	"time"

	"account_backend/internal/feature/auth/domain/entity"
)

// ErrorRes is the body of every error response.
type ErrorRes struct {
	Error string `json:"error"`
}

// MessageRes is a plain confirmation.
type MessageRes struct {
	Message string `json:"message"`
}

// UserSummary is the minimal user representation returned after authentication.
type UserSummary struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// RegisterRes is returned by /register.
type RegisterRes struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// FederatedLoginRes is returned by /federated-login.
type FederatedLoginRes struct {
	UserSummary
	IsNewUser bool `json:"isNewUser"`
}

// ClientIDRes exposes the identity provider client id; null when federated login is off.
type ClientIDRes struct {
	ClientID *string `json:"clientId"`
}

// UserProfile is the full public view of an account. It never includes credentials.
type UserProfile struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AuthProvider string    `json:"authProvider"`
	AvatarURL    *string   `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUserSummary converts an entity to its summary.
func NewUserSummary(u *entity.User) UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, Name: u.Name}
}

// NewUserProfile converts an entity to its profile.
func NewUserProfile(u *entity.User) UserProfile {
	return UserProfile{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		AuthProvider: string(u.AuthProvider),
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
