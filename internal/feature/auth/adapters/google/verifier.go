// Package google verifies Google-issued ID tokens for federated login.
package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"

	"account_backend/internal/feature/auth/domain"
	"account_backend/internal/feature/auth/domain/entity"
)

// DefaultTimeout bounds a single verification round trip.
const DefaultTimeout = 10 * time.Second

var validIssuers = map[string]struct{}{
	"accounts.google.com":         {},
	"https://accounts.google.com": {},
}

// TokenValidator checks an ID token's signature, expiry and audience.
// *idtoken.Validator satisfies it.
type TokenValidator interface {
	Validate(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)
}

// Verifier turns a Google ID token into verified claims.
type Verifier struct {
	validator TokenValidator
	clientID  string
	timeout   time.Duration
}

// NewVerifier creates a Verifier that fetches Google's signing keys with httpClient.
func NewVerifier(ctx context.Context, clientID string, httpClient *http.Client, timeout time.Duration) (*Verifier, error) {
	v, err := idtoken.NewValidator(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create id token validator: %w", err)
	}
	return NewVerifierWithValidator(v, clientID, timeout), nil
}

// NewVerifierWithValidator creates a Verifier around an existing validator.
func NewVerifierWithValidator(validator TokenValidator, clientID string, timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Verifier{validator: validator, clientID: clientID, timeout: timeout}
}

// Verify validates token against the configured client id and extracts its claims.
// Every failure is domain.ErrInvalidFederatedToken; the reason is only logged.
// Verification is attempted once.
func (v *Verifier) Verify(ctx context.Context, token string) (*entity.FederatedClaims, error) {
	if token == "" {
		return nil, domain.ErrInvalidFederatedToken
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	payload, err := v.validator.Validate(ctx, token, v.clientID)
	if err != nil {
		slog.Warn("federated token rejected", "error", err)
		return nil, domain.ErrInvalidFederatedToken
	}
	if _, ok := validIssuers[payload.Issuer]; !ok {
		slog.Warn("federated token rejected", "error", "unexpected issuer", "issuer", payload.Issuer)
		return nil, domain.ErrInvalidFederatedToken
	}
	if payload.Subject == "" {
		slog.Warn("federated token rejected", "error", "empty subject")
		return nil, domain.ErrInvalidFederatedToken
	}

	return claimsFromPayload(payload), nil
}

func claimsFromPayload(p *idtoken.Payload) *entity.FederatedClaims {
	email := stringClaim(p.Claims, "email")
	claims := &entity.FederatedClaims{
		Subject:       p.Subject,
		Email:         email,
		EmailVerified: boolClaim(p.Claims, "email_verified"),
		Name:          stringClaim(p.Claims, "name"),
	}
	if claims.Name == "" {
		claims.Name = fallbackName(email)
	}
	if picture := stringClaim(p.Claims, "picture"); picture != "" {
		claims.AvatarURL = &picture
	}
	return claims
}

// fallbackName is the local part of the email, or "User" without one.
func fallbackName(email string) string {
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	if email != "" {
		return email
	}
	return "User"
}

func stringClaim(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}

// boolClaim accepts both JSON booleans and the string "true".
func boolClaim(claims map[string]any, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}
