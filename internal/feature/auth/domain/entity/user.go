// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// AuthProvider describes which credentials are enabled on an account.
type AuthProvider string

const (
	// ProviderPassword means only password login is enabled.
	ProviderPassword AuthProvider = "password"
	// ProviderFederated means only federated login is enabled.
	ProviderFederated AuthProvider = "federated"
	// ProviderBoth means both password and federated login are enabled.
	ProviderBoth AuthProvider = "both"
)

// User represents a registered account.
// At least one of PasswordHash and FederatedID is always set.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is unique across all users and stored as given.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash, nil for federated-only accounts.
	PasswordHash *string `gorm:"size:255"`

	// Name is the display name.
	Name string `gorm:"size:255;not null"`

	// FederatedID is the identity provider subject, nil until linked.
	FederatedID *string `gorm:"uniqueIndex;size:255"`

	// AuthProvider mirrors which of PasswordHash and FederatedID are set.
	AuthProvider AuthProvider `gorm:"size:16;not null"`

	// AvatarURL comes from the identity provider and is never overwritten once set.
	AvatarURL *string `gorm:"size:2048"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time
}

// HasPassword reports whether password login is enabled.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// HasFederatedIdentity reports whether a federated identity is linked.
func (u *User) HasFederatedIdentity() bool {
	return u.FederatedID != nil && *u.FederatedID != ""
}

// DeriveAuthProvider computes the provider from the populated credential fields.
// It returns an empty value when neither credential is present.
func (u *User) DeriveAuthProvider() AuthProvider {
	switch {
	case u.HasPassword() && u.HasFederatedIdentity():
		return ProviderBoth
	case u.HasPassword():
		return ProviderPassword
	case u.HasFederatedIdentity():
		return ProviderFederated
	default:
		return ""
	}
}

// ProfileUpdate carries the optional fields of a profile update.
// A nil field keeps the stored value.
type ProfileUpdate struct {
	Name  *string
	Email *string
}
