// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for /register.
// Field rules are enforced by the usecase so every client sees the same messages.
type RegisterReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginReq represents the request body for /login.
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FederatedLoginReq carries the identity provider credential (an ID token).
type FederatedLoginReq struct {
	Credential string `json:"credential"`
}
