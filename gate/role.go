// Package gate provides role-based authorization for the CRM.
// Roles form a closed set; all access decisions go through a single
// predicate (Allowed) so the admin bypass exists in exactly one place.
package gate

// Role is one of the fixed user roles known to the system.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleSales      Role = "Sales"
	RoleManager    Role = "Manager"
	RoleAccountant Role = "Accountant"
)

// Roles lists every valid role, in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleSales, RoleManager, RoleAccountant}
}

// ParseRole validates a role string coming from a form or the database.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSales, RoleManager, RoleAccountant:
		return true
	}
	return false
}

// Allowed is the single authorization predicate. Admin passes every
// check; other roles pass when they appear in required. An empty
// required set means any valid role is accepted.
func Allowed(role Role, required ...Role) bool {
	if !role.Valid() {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	if len(required) == 0 {
		return true
	}
	for _, want := range required {
		if role == want {
			return true
		}
	}
	return false
}
