package model

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleClerk  UserRole = "CLERK"
	UserRoleViewer UserRole = "VIEWER"
)

type Principal struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
	Role   UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

func (p Principal) IsClerk() bool {
	return p.Role == UserRoleClerk
}

// CanRegister reports whether the principal may create contractors.
func (p Principal) CanRegister() bool {
	return p.IsAdmin() || p.IsClerk()
}
