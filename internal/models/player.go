package models

// PlayerScore tracks persistent score across games in the same room
type PlayerScore struct {
	GamesWon  int `json:"games_won"`
	GamesLost int `json:"games_lost"`
}

// Player represents a participant seated in a room
type Player struct {
	ID      string
	Name    string
	IsHost  bool
	Role    Role
	Word    string // empty for Mr. White and outside a game
	IsAlive bool
}

// Clue is one entry of the room's clue log
type Clue struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Clue       string `json:"clue"`
	Round      int    `json:"round"`
}
