package domain

// Role is the closed set of roles a principal can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a role claim string onto the closed enumeration. Anything
// that is not exactly "admin" is a regular user.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
