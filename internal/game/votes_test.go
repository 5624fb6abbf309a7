package game

import (
	"testing"

	"github.com/aaronzipp/undercover/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTallyVotesMajority(t *testing.T) {
	votes := map[string]string{"a": "x", "b": "x", "c": "y"}
	rng := &pickRandom{}

	eliminated, counts := TallyVotes(votes, rng)

	assert.Equal(t, "x", eliminated)
	assert.Equal(t, map[string]int{"x": 2, "y": 1}, counts)
	assert.Zero(t, rng.calls, "a clear majority needs no random choice")
}

func TestTallyVotesTieIsRandom(t *testing.T) {
	votes := map[string]string{"a": "x", "b": "y", "c": "z", "d": "z", "e": "x"}

	first, _ := TallyVotes(votes, &pickRandom{index: 0})
	second, _ := TallyVotes(votes, &pickRandom{index: 1})

	// tied candidates are sorted, so the index maps to a fixed id
	assert.Equal(t, "x", first)
	assert.Equal(t, "z", second)
}

func TestTallyVotesTieCoversAllCandidates(t *testing.T) {
	votes := map[string]string{"a": "x", "b": "y", "c": "z"}
	rng := seeded(42)

	seen := make(map[string]int)
	for range 300 {
		eliminated, _ := TallyVotes(votes, rng)
		seen[eliminated]++
	}
	assert.Len(t, seen, 3)
	for id, n := range seen {
		assert.Greater(t, n, 50, "candidate %s picked too rarely", id)
	}
}

func TestTallyVotesEmpty(t *testing.T) {
	eliminated, counts := TallyVotes(map[string]string{}, &pickRandom{})
	assert.Empty(t, eliminated)
	assert.Empty(t, counts)
}

func players(specs ...any) map[string]*models.Player {
	out := make(map[string]*models.Player)
	for i := 0; i < len(specs); i += 2 {
		role := specs[i].(models.Role)
		isAlive := specs[i+1].(bool)
		id := string(rune('a' + i/2))
		out[id] = &models.Player{ID: id, Role: role, IsAlive: isAlive}
	}
	return out
}

func TestCheckWinner(t *testing.T) {
	C, U, M := models.RoleCivilian, models.RoleUndercover, models.RoleMrWhite

	tests := []struct {
		name    string
		players map[string]*models.Player
		want    models.Winner
	}{
		{"all adversaries out", players(C, true, C, true, U, false, M, false), models.WinnerCivilians},
		{"two against two goes to undercovers", players(C, true, C, true, U, true, M, true), models.WinnerUndercovers},
		{"outnumbered civilians", players(C, true, U, true, U, true), models.WinnerUndercovers},
		{"mr white and civilian tie", players(C, true, C, false, U, false, M, true), models.WinnerUndercovers},
		{"game goes on", players(C, true, C, true, C, true, U, true, M, true), models.WinnerNone},
		{"dead players do not count", players(C, true, C, true, C, false, U, true), models.WinnerNone},
		{"nobody alive", players(C, false, U, false), models.WinnerNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CheckWinner(tc.players))
		})
	}
}

func TestGuessMatches(t *testing.T) {
	assert.True(t, GuessMatches("coffee", "coffee"))
	assert.True(t, GuessMatches("  CoFFee ", "coffee"))
	assert.False(t, GuessMatches("tea", "coffee"))
	assert.False(t, GuessMatches("", ""))
	assert.False(t, GuessMatches("   ", "coffee"))
}
