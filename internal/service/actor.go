package service

import (
	"github.com/google/uuid"

	"backoffice/internal/model"
)

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// IsEmployee reports whether the actor holds the most restricted role.
func (a Actor) IsEmployee() bool {
	return a.Role == model.RoleEmployee
}
