package domain

import "strings"

// Role is the coarse permission grouping stored on every user.
type Role string

const (
	// RoleAdmin is the site owner. Content it authors may be attributed to
	// the site itself instead of an individual.
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles. Empty and unknown
// values are never valid.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// ParseRole normalises s and returns the matching Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}
