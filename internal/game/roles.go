package game

import "github.com/aaronzipp/undercover/internal/models"

// DefaultUndercoverCount is used when the host never picked a count:
// one undercover up to five players, two from six on
func DefaultUndercoverCount(playerCount int) int {
	if playerCount <= 5 {
		return 1
	}
	return 2
}

// ClampUndercoverCount bounds count to [1, playerCount-2] so at least one
// civilian and exactly one Mr. White remain
func ClampUndercoverCount(playerCount, count int) int {
	maxUndercovers := playerCount - 2
	if count > maxUndercovers {
		count = maxUndercovers
	}
	if count < 1 {
		count = 1
	}
	return count
}

// AssignRoles deals undercoverCount undercovers (clamped), one Mr. White and
// civilians for the rest, shuffled
func AssignRoles(rng Random, playerCount, undercoverCount int) ([]models.Role, error) {
	if playerCount < MinPlayers {
		return nil, ErrTooFewPlayers
	}
	undercoverCount = ClampUndercoverCount(playerCount, undercoverCount)

	roles := make([]models.Role, 0, playerCount)
	for range undercoverCount {
		roles = append(roles, models.RoleUndercover)
	}
	roles = append(roles, models.RoleMrWhite)
	for len(roles) < playerCount {
		roles = append(roles, models.RoleCivilian)
	}

	rng.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})
	return roles, nil
}

// AssignWords draws one pair from source and maps every role to its word,
// preserving order. Mr. White gets the empty word.
func AssignWords(roles []models.Role, source WordSource) ([]string, string, string) {
	civilianWord, undercoverWord := source.NextWordPair()

	words := make([]string, len(roles))
	for i, role := range roles {
		switch role {
		case models.RoleCivilian:
			words[i] = civilianWord
		case models.RoleUndercover:
			words[i] = undercoverWord
		}
	}
	return words, civilianWord, undercoverWord
}
