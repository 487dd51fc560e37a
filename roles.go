package accounts

// UserRole is a role tag attached to an account
type UserRole string

const (
	// RoleUser is the default role every account gets
	RoleUser UserRole = "user"
	// RoleAdmin marks administrative accounts
	RoleAdmin UserRole = "admin"
)

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// DefaultRoles returns the role set assigned when registration omits roles
func DefaultRoles() []UserRole {
	return []UserRole{RoleUser}
}

// NormalizeRoles applies the default role set when the input is empty.
// Boundary validation already rejected unknown tags by the time records
// reach the store.
func NormalizeRoles(roles []UserRole) []UserRole {
	if len(roles) == 0 {
		return DefaultRoles()
	}
	out := make([]UserRole, len(roles))
	copy(out, roles)
	return out
}

// ValidRoles returns all predefined roles
func ValidRoles() []UserRole {
	return []UserRole{RoleUser, RoleAdmin}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}
