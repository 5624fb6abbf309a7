package game

import (
	"slices"
	"strings"

	"github.com/aaronzipp/undercover/internal/models"
)

// TallyVotes counts a round's votes and picks who gets eliminated. Ties at the
// maximum are broken by a uniform random choice among the tied targets.
// Returns "" when nobody voted.
func TallyVotes(votes map[string]string, rng Random) (string, map[string]int) {
	voteCount := make(map[string]int)
	for _, votedFor := range votes {
		voteCount[votedFor]++
	}

	maxVotes := 0
	var playersWithMaxVotes []string
	for pID, count := range voteCount {
		if count > maxVotes {
			maxVotes = count
			playersWithMaxVotes = []string{pID}
		} else if count == maxVotes {
			playersWithMaxVotes = append(playersWithMaxVotes, pID)
		}
	}

	if len(playersWithMaxVotes) == 0 {
		return "", voteCount
	}
	if len(playersWithMaxVotes) == 1 {
		return playersWithMaxVotes[0], voteCount
	}

	// map order is random; sort so a seeded source picks reproducibly
	slices.Sort(playersWithMaxVotes)
	return playersWithMaxVotes[rng.IntN(len(playersWithMaxVotes))], voteCount
}

// CountAlive returns how many alive players hold each role
func CountAlive(players map[string]*models.Player) (civilians, undercovers, mrWhite int) {
	for _, p := range players {
		if !p.IsAlive {
			continue
		}
		switch p.Role {
		case models.RoleCivilian:
			civilians++
		case models.RoleUndercover:
			undercovers++
		case models.RoleMrWhite:
			mrWhite++
		}
	}
	return civilians, undercovers, mrWhite
}

// CheckWinner evaluates the alive players.
//
// Civilians win once every undercover and Mr. White is out. The undercover
// side wins as soon as it is at least as large as the civilians; an exact tie
// goes to the undercovers.
func CheckWinner(players map[string]*models.Player) models.Winner {
	civilians, undercovers, mrWhite := CountAlive(players)
	if civilians+undercovers+mrWhite == 0 {
		return models.WinnerNone
	}
	if undercovers == 0 && mrWhite == 0 {
		return models.WinnerCivilians
	}
	if undercovers+mrWhite >= civilians {
		return models.WinnerUndercovers
	}
	return models.WinnerNone
}

// GuessMatches compares Mr. White's guess with the civilian word, ignoring
// case and surrounding whitespace
func GuessMatches(guess, civilianWord string) bool {
	guess = strings.TrimSpace(guess)
	civilianWord = strings.TrimSpace(civilianWord)
	if guess == "" || civilianWord == "" {
		return false
	}
	return strings.EqualFold(guess, civilianWord)
}
