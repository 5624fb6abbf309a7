package models

// PublicPlayer is the roster entry every participant may see
type PublicPlayer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsHost  bool   `json:"is_host"`
	IsAlive bool   `json:"is_alive"`
}

// PublicState is the room snapshot broadcast to all participants. It never
// carries roles or words. Revision grows with every change to the room, so a
// client can drop a snapshot older than the one it shows.
type PublicState struct {
	RoomCode        string                 `json:"room_code"`
	Revision        uint64                 `json:"revision"`
	Phase           Phase                  `json:"phase"`
	PlayerCount     int                    `json:"player_count"`
	UndercoverCount int                    `json:"undercover_count"`
	Players         []PublicPlayer         `json:"players"`
	CurrentTurn     string                 `json:"current_turn,omitempty"`
	RoundNumber     int                    `json:"round_number"`
	Clues           []Clue                 `json:"clues"`
	Winner          Winner                 `json:"winner,omitempty"`
	Scores          map[string]PlayerScore `json:"scores"`
}

// PrivateState is delivered only to the player it describes
type PrivateState struct {
	Role    Role    `json:"role,omitempty"`
	Word    *string `json:"word"`
	IsAlive bool    `json:"is_alive"`
}

// RevealedPlayer is a roster entry with secrets, sent once the game is over
type RevealedPlayer struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Role    Role    `json:"role"`
	Word    *string `json:"word"`
	IsAlive bool    `json:"is_alive"`
}

// Reveal is the end-of-game announcement
type Reveal struct {
	Winner         Winner           `json:"winner"`
	Players        []RevealedPlayer `json:"all_players"`
	CivilianWord   string           `json:"civilian_word"`
	UndercoverWord string           `json:"undercover_word"`
	MrWhiteGuess   string           `json:"mr_white_guess,omitempty"`
}

// WordPtr maps the empty word to nil so it serializes as JSON null
func WordPtr(word string) *string {
	if word == "" {
		return nil
	}
	return &word
}
