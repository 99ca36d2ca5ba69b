// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role is the access tier of a user. The set is closed: only the constants below are valid.
type Role string

const (
	// RoleUser is the default tier given at registration.
	RoleUser Role = "User"
	// RoleAdministrator may act on other users' accounts.
	RoleAdministrator Role = "Administrator"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdministrator:
		return true
	default:
		return false
	}
}

// Roles is a set of roles, used by the access policy table.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ParseRole converts a claim or column value into a Role, reporting whether it is known.
func ParseRole(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
