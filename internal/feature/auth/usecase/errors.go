// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrSessionNotFound is returned by session repositories when no session has the given ID.
	ErrSessionNotFound = errors.New("session not found")
)
