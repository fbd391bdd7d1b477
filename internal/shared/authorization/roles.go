package authorization

// UserRole is the global role of an account. Project and team roles live in
// the membership package.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleDeveloper UserRole = "developer"
	RoleUser      UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RoleUser:
		return true
	}
	return false
}

// ParseUserRole falls back to RoleUser for unknown input.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}
