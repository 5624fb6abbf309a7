package game

import (
	"testing"

	"github.com/aaronzipp/undercover/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRoles(roles []models.Role) map[models.Role]int {
	counts := make(map[models.Role]int)
	for _, r := range roles {
		counts[r]++
	}
	return counts
}

func TestAssignRolesCounts(t *testing.T) {
	rng := seeded(7)
	for n := MinPlayers; n <= 12; n++ {
		roles, err := AssignRoles(rng, n, DefaultUndercoverCount(n))
		require.NoError(t, err)
		require.Len(t, roles, n)

		counts := countRoles(roles)
		assert.Equal(t, 1, counts[models.RoleMrWhite], "n=%d", n)
		assert.Equal(t, DefaultUndercoverCount(n), counts[models.RoleUndercover], "n=%d", n)
		assert.Equal(t, n-1-DefaultUndercoverCount(n), counts[models.RoleCivilian], "n=%d", n)
	}
}

func TestAssignRolesClampsCount(t *testing.T) {
	rng := seeded(7)

	roles, err := AssignRoles(rng, 4, 10)
	require.NoError(t, err)
	counts := countRoles(roles)
	assert.Equal(t, 2, counts[models.RoleUndercover])
	assert.Equal(t, 1, counts[models.RoleCivilian])

	roles, err = AssignRoles(rng, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, countRoles(roles)[models.RoleUndercover])
}

func TestAssignRolesTooFewPlayers(t *testing.T) {
	_, err := AssignRoles(seeded(1), 3, 1)
	assert.ErrorIs(t, err, ErrTooFewPlayers)
}

func TestDefaultUndercoverCount(t *testing.T) {
	assert.Equal(t, 1, DefaultUndercoverCount(4))
	assert.Equal(t, 1, DefaultUndercoverCount(5))
	assert.Equal(t, 2, DefaultUndercoverCount(6))
	assert.Equal(t, 2, DefaultUndercoverCount(10))
}

func TestAssignWords(t *testing.T) {
	roles := []models.Role{models.RoleUndercover, models.RoleCivilian, models.RoleMrWhite, models.RoleCivilian}

	words, civilian, undercover := AssignWords(roles, fixedWords{"coffee", "tea"})

	assert.Equal(t, "coffee", civilian)
	assert.Equal(t, "tea", undercover)
	assert.Equal(t, []string{"tea", "coffee", "", "coffee"}, words)
}
