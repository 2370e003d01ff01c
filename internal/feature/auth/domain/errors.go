// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Error kinds. Every error returned by the auth and user features either
// matches one of these with errors.Is or is an unexpected server error.
var (
	// ErrValidation indicates malformed input.
	ErrValidation = errors.New("validation error")

	// ErrAuth indicates bad credentials, an invalid federated token, or a missing session.
	ErrAuth = errors.New("authentication error")

	// ErrForbidden indicates a policy violation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("conflict")
)

// Error is a classified error with a message that is safe to show to clients.
type Error struct {
	kind    error
	message string
	cause   error
	base    *Error
}

// Error returns the client-safe message.
func (e *Error) Error() string {
	return e.message
}

// Is matches the kind sentinel, and the named error e was derived from by WithCause.
func (e *Error) Is(target error) bool {
	if target == e.kind {
		return true
	}
	t, ok := target.(*Error)
	return ok && e.base != nil && t == e.base
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the sentinel this error is classified as.
func (e *Error) Kind() error {
	return e.kind
}

// WithCause returns a copy of e that wraps cause. The copy still matches e with errors.Is.
func (e *Error) WithCause(cause error) error {
	base := e
	if e.base != nil {
		base = e.base
	}
	return &Error{kind: e.kind, message: e.message, cause: cause, base: base}
}

func newError(kind error, message string, cause error) *Error {
	return &Error{kind: kind, message: message, cause: cause}
}

// NewValidationError returns an ErrValidation error.
func NewValidationError(message string) error { return newError(ErrValidation, message, nil) }

// NewAuthError returns an ErrAuth error.
func NewAuthError(message string) error { return newError(ErrAuth, message, nil) }

// NewForbiddenError returns an ErrForbidden error.
func NewForbiddenError(message string) error { return newError(ErrForbidden, message, nil) }

// NewNotFoundError returns an ErrNotFound error.
func NewNotFoundError(message string) error { return newError(ErrNotFound, message, nil) }

// NewConflictError returns an ErrConflict error wrapping the storage cause.
func NewConflictError(message string, cause error) error {
	return newError(ErrConflict, message, cause)
}

// Shared errors for authentication operations.
var (
	// ErrInvalidCredentials never says whether the email exists.
	ErrInvalidCredentials = NewAuthError("invalid credentials")

	// ErrUnauthenticated is returned when no valid session backs a request.
	ErrUnauthenticated = NewAuthError("authentication required")

	// ErrInvalidFederatedToken is returned for any identity token that fails verification.
	ErrInvalidFederatedToken = NewAuthError("invalid federated token")

	// ErrFederatedNotConfigured is returned when no identity provider client id is configured.
	ErrFederatedNotConfigured = NewValidationError("federated login is not configured")

	// ErrUnverifiedFederatedEmail blocks linking an unverified provider email to an existing account.
	ErrUnverifiedFederatedEmail = NewForbiddenError("federated email must be verified to link to an existing account")

	// ErrEmailAlreadyRegistered is the conflict raised for duplicate emails.
	ErrEmailAlreadyRegistered = newError(ErrConflict, "email already registered", nil)

	// ErrFederatedIdentityLinked is the conflict raised when a federated subject belongs to another account.
	ErrFederatedIdentityLinked = newError(ErrConflict, "federated identity already linked", nil)

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = NewNotFoundError("user not found")
)
