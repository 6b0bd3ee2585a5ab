package service

import (
	"github.com/Msdoshack/2do/internal/domain"
	"github.com/google/uuid"
)

// Principal is the authenticated caller of a service operation.
type Principal struct {
	AccountID uuid.UUID
	Role      domain.Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}

// PrincipalFor builds the principal for an account.
func PrincipalFor(u *domain.User) Principal {
	return Principal{AccountID: u.ID, Role: u.Role}
}
