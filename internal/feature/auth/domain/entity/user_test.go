package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestUser_DeriveAuthProvider(t *testing.T) {
	tests := []struct {
		name string
		user User
		want AuthProvider
	}{
		{"password only", User{PasswordHash: ptr("h")}, ProviderPassword},
		{"federated only", User{FederatedID: ptr("g-1")}, ProviderFederated},
		{"both", User{PasswordHash: ptr("h"), FederatedID: ptr("g-1")}, ProviderBoth},
		{"empty strings count as absent", User{PasswordHash: ptr(""), FederatedID: ptr("")}, ""},
		{"neither", User{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DeriveAuthProvider())
		})
	}
}

func TestSession_IsExpiredAt(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now}

	assert.False(t, s.IsExpiredAt(now.Add(-time.Nanosecond)))
	assert.True(t, s.IsExpiredAt(now), "expiry instant is already expired")
	assert.True(t, s.IsExpiredAt(now.Add(time.Second)))
}
