//go:build unit

package user_test

import (
	"testing"

	"servicebook/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	for _, s := range []string{"customer", "worker", "admin"} {
		role, err := user.NewRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
	}

	_, err := user.NewRole("viewer")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestResolve(t *testing.T) {
	t.Run("unknown when no namespace has the uid", func(t *testing.T) {
		id := user.Resolve("u1", map[user.Role]user.Profile{})
		assert.False(t, id.IsKnown())
		assert.Nil(t, id.Profile)
	})

	t.Run("single namespace", func(t *testing.T) {
		id := user.Resolve("u1", map[user.Role]user.Profile{
			user.RoleWorker: {"fullName": "Nimal"},
		})
		assert.True(t, id.IsWorker())
		assert.Equal(t, "Nimal", id.Profile.FullName("Worker"))
	})

	t.Run("first match wins when present in several namespaces", func(t *testing.T) {
		id := user.Resolve("u1", map[user.Role]user.Profile{
			user.RoleAdmin:    {"fullName": "Root"},
			user.RoleCustomer: {"fullName": "Kamal"},
			user.RoleWorker:   {"fullName": "Nimal"},
		})
		assert.True(t, id.IsCustomer())
		assert.Equal(t, "Kamal", id.Profile.FullName(""))
	})

	t.Run("empty profile still resolves", func(t *testing.T) {
		id := user.Resolve("u1", map[user.Role]user.Profile{user.RoleAdmin: nil})
		assert.True(t, id.IsAdmin())
		assert.Equal(t, "Admin", id.Profile.FullName("Admin"))
	})
}
