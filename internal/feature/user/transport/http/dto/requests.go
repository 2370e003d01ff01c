// Package dto defines data transfer objects for the user feature's HTTP transport layer.
package dto

import "account_backend/internal/feature/auth/domain/entity"

// UpdateUserReq is the body of PUT /api/users/:id. Absent fields are kept.
type UpdateUserReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// ToProfileUpdate converts the request to the entity form.
func (r UpdateUserReq) ToProfileUpdate() entity.ProfileUpdate {
	return entity.ProfileUpdate{Name: r.Name, Email: r.Email}
}
