package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin      = "admin"      // PT / studio owner
	RoleEmployee   = "employee"   // staff member working under a PT
	RoleClient     = "client"     // athlete
	RoleSuperadmin = "superadmin" // platform operator
)

// deletedRolePrefix marks a login identity whose account was soft-deleted.
// The row is kept for the audit trail; a prefixed role can never log in.
const deletedRolePrefix = "deleted_"

// User models a login identity. Athletes are additionally represented by a
// linked Client row holding profile data; ClientID carries that link.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	ClientID     string    `json:"client_id,omitempty"`
	TrainerID    string    `json:"trainer_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Disabled reports whether the identity has been soft-deleted.
func (u *User) Disabled() bool {
	return strings.HasPrefix(u.Role, deletedRolePrefix)
}

// DeletedRole returns the sentinel role used when soft-deleting an identity,
// e.g. "client" becomes "deleted_client".
func DeletedRole(role string) string {
	if strings.HasPrefix(role, deletedRolePrefix) {
		return role
	}
	return deletedRolePrefix + role
}

// TrainerRole reports whether the role works in the PT area of the app.
func TrainerRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

// HomePath maps a role to the area of the application it lands on.
func HomePath(role string) string {
	switch role {
	case RoleClient:
		return "/athlete"
	case RoleSuperadmin:
		return "/admin"
	default:
		return "/dashboard"
	}
}
