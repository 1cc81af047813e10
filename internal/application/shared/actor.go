package shared

import "github.com/google/uuid"

// Actor identifies the caller of a use case. Authentication happens
// upstream; the application layer only authorizes by role membership.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// Privileged roles for operations gated beyond plain membership.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// IsPrivileged reports whether the actor may confirm counts, lock
// periods and record payouts.
func (a Actor) IsPrivileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}
