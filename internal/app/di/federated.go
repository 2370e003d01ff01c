package di

import (
	"context"

	"account_backend/internal/feature/auth/adapters/google"
	"account_backend/internal/platform/config"
	infrahttp "account_backend/internal/platform/http"
)

// NewFederatedVerifier creates the identity token verifier with its own
// bounded HTTP client. It returns nil when federated login is disabled.
func NewFederatedVerifier(ctx context.Context, cfg config.Config) (*google.Verifier, error) {
	if !cfg.FederatedEnabled() {
		return nil, nil
	}
	httpClient := infrahttp.NewHTTPClient(cfg.FederatedVerifyTimeout)
	return google.NewVerifier(ctx, cfg.GoogleClientID, httpClient, cfg.FederatedVerifyTimeout)
}
