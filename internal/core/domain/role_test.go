package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole("user")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, r)

	for _, bad := range []string{"", "root", "owner_admin"} {
		_, err := ParseRole(bad)
		assert.ErrorIs(t, err, ErrInvalidRole, "ParseRole(%q)", bad)
	}
}

func TestRoleValid_EmptyIsInvalid(t *testing.T) {
	assert.False(t, Role("").Valid())
}

func TestUserDiscoverable(t *testing.T) {
	assert.True(t, (&User{Public: true, Handle: "alice"}).Discoverable())
	assert.False(t, (&User{Public: true}).Discoverable())
	assert.False(t, (&User{Handle: "alice"}).Discoverable())
}
