package game

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/aaronzipp/undercover/internal/models"
	"github.com/stretchr/testify/require"
)

type fixedWords struct {
	civilian   string
	undercover string
}

func (w fixedWords) NextWordPair() (string, string) {
	return w.civilian, w.undercover
}

// pickRandom always chooses the same index and never reorders
type pickRandom struct {
	index int
	calls int
}

func (p *pickRandom) IntN(n int) int {
	p.calls++
	return p.index % n
}

func (p *pickRandom) Shuffle(int, func(i, j int)) {}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed*31+7))
}

// newLobby seats n players p0..p(n-1); p0 hosts
func newLobby(t *testing.T, n int, seed uint64) (*Room, []string) {
	t.Helper()
	r, err := NewRoom("ABC123", "p0", "Player 0", seeded(seed), fixedWords{"coffee", "tea"})
	require.NoError(t, err)

	ids := []string{"p0"}
	for i := 1; i < n; i++ {
		id := fmt.Sprintf("p%d", i)
		_, err := r.AddPlayer(id, fmt.Sprintf("Player %d", i))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return r, ids
}

// newGame starts a game of n players; undercovers 0 keeps the automatic count
func newGame(t *testing.T, n, undercovers int, seed uint64) (*Room, []string) {
	t.Helper()
	r, ids := newLobby(t, n, seed)
	if undercovers > 0 {
		_, err := r.UpdateSettings("p0", undercovers)
		require.NoError(t, err)
	}
	_, err := r.StartGame("p0")
	require.NoError(t, err)
	return r, ids
}

func withRole(r *Room, role models.Role) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, id := range r.joinOrder {
		if r.players[id].Role == role {
			ids = append(ids, id)
		}
	}
	return ids
}

func alive(r *Room) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, id := range r.joinOrder {
		if r.players[id].IsAlive {
			ids = append(ids, id)
		}
	}
	return ids
}

// finishClues has every remaining player give a clue
func finishClues(t *testing.T, r *Room) models.PublicState {
	t.Helper()
	state := r.PublicState()
	for state.Phase == models.PhasePlaying {
		var err error
		state, err = r.SubmitClue(state.CurrentTurn, "hint")
		require.NoError(t, err)
	}
	return state
}

// voteOut finishes the clue round and has every alive player vote for target
func voteOut(t *testing.T, r *Room, target string) VoteOutcome {
	t.Helper()
	finishClues(t, r)
	require.Equal(t, models.PhaseVoting, r.Phase())

	var out VoteOutcome
	for _, voter := range alive(r) {
		var err error
		out, err = r.SubmitVote(voter, target)
		require.NoError(t, err)
	}
	require.True(t, out.Resolved)
	return out
}
