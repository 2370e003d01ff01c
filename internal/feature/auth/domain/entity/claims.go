package entity

// FederatedClaims are the verified attributes of an identity provider token.
type FederatedClaims struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	AvatarURL     *string
}
