package policy

import (
	"fmt"

	"github.com/inkwell/content-system/internal/core/domain"
)

// RoleSet is an immutable set of roles. The zero value contains nothing.
type RoleSet struct {
	admin bool
	user  bool
}

// NewRoleSet builds a RoleSet. Unknown roles are rejected so that a typo in
// configuration fails at startup instead of silently denying everyone.
func NewRoleSet(roles ...domain.Role) (RoleSet, error) {
	var s RoleSet
	for _, r := range roles {
		switch r {
		case domain.RoleAdmin:
			s.admin = true
		case domain.RoleUser:
			s.user = true
		default:
			return RoleSet{}, fmt.Errorf("policy: %w: %q", domain.ErrInvalidRole, r)
		}
	}
	return s, nil
}

// MustRoleSet is NewRoleSet for literals known to be valid.
func MustRoleSet(roles ...domain.Role) RoleSet {
	s, err := NewRoleSet(roles...)
	if err != nil {
		panic(err)
	}
	return s
}

// Contains reports whether r is a member. Unknown or empty roles are never
// members.
func (s RoleSet) Contains(r domain.Role) bool {
	switch r {
	case domain.RoleAdmin:
		return s.admin
	case domain.RoleUser:
		return s.user
	}
	return false
}

// Roles lists the members in a stable order.
func (s RoleSet) Roles() []domain.Role {
	var out []domain.Role
	if s.admin {
		out = append(out, domain.RoleAdmin)
	}
	if s.user {
		out = append(out, domain.RoleUser)
	}
	return out
}

// Config fixes which roles may do what. It is built once at startup and
// passed by value, so an Evaluator can never observe it changing.
type Config struct {
	// Authors may write content under their own name.
	Authors RoleSet
	// OwnerEntityAuthors may write content attributed to the site and
	// manage every such item regardless of who created it.
	OwnerEntityAuthors RoleSet
	// PageAuthors may create and manage static pages.
	PageAuthors RoleSet
}

// DefaultConfig mirrors the stock deployment: everyone can blog, only
// admins post as the site or manage pages.
func DefaultConfig() Config {
	return Config{
		Authors:            MustRoleSet(domain.RoleAdmin, domain.RoleUser),
		OwnerEntityAuthors: MustRoleSet(domain.RoleAdmin),
		PageAuthors:        MustRoleSet(domain.RoleAdmin),
	}
}
