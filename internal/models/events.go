package models

// Connected greets a new connection with its participant id
type Connected struct {
	PlayerID string `json:"player_id"`
	Message  string `json:"message"`
}

// RoomEntered is sent to the creator or joiner of a room
type RoomEntered struct {
	RoomCode   string       `json:"room_code"`
	GameState  PublicState  `json:"game_state"`
	PlayerData PrivateState `json:"player_data"`
}

// StateUpdate carries only the public snapshot
type StateUpdate struct {
	GameState PublicState `json:"game_state"`
}

// PlayerLeft announces a departure
type PlayerLeft struct {
	PlayerID  string      `json:"player_id"`
	GameState PublicState `json:"game_state"`
}

// RoleAssigned delivers a player's secret at game start
type RoleAssigned struct {
	PlayerData PrivateState `json:"player_data"`
}

// VoteSubmitted reports ballot progress. Once the ballot resolves it names
// the eliminated player and the final counts.
type VoteSubmitted struct {
	GameState          PublicState    `json:"game_state"`
	EliminatedPlayerID string         `json:"eliminated_player_id,omitempty"`
	VoteCounts         map[string]int `json:"vote_counts,omitempty"`
}

// GameEnded reveals every secret once a winner is known
type GameEnded struct {
	GameState PublicState `json:"game_state"`
	Reveal
}
