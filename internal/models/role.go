package models

// Role is the secret role dealt to a player at game start
type Role string

const (
	RoleNone       Role = ""
	RoleCivilian   Role = "civilian"
	RoleUndercover Role = "undercover"
	RoleMrWhite    Role = "mrwhite"
)

// Winner identifies the faction that won a game
type Winner string

const (
	WinnerNone        Winner = ""
	WinnerCivilians   Winner = "civilians"
	WinnerUndercovers Winner = "undercovers"
	WinnerMrWhite     Winner = "mrwhite"
)

// Wins reports whether a player holding role r is on the winning side of w.
// Mr. White belongs to the undercover faction for a faction win, but only
// Mr. White wins a correct guess.
func (w Winner) Wins(r Role) bool {
	switch w {
	case WinnerCivilians:
		return r == RoleCivilian
	case WinnerUndercovers:
		return r == RoleUndercover || r == RoleMrWhite
	case WinnerMrWhite:
		return r == RoleMrWhite
	default:
		return false
	}
}
