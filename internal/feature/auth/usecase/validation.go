package usecase

import (
	"regexp"
	"unicode/utf8"

	"account_backend/internal/feature/auth/domain"
)

const (
	// MinPasswordLength is the minimum number of characters in a password.
	MinPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has the local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// validatePassword checks the password length requirement.
func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return domain.NewValidationError("password must be at least 6 characters")
	}
	return nil
}
