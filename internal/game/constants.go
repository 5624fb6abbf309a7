package game

import "time"

const (
	// MinPlayers is the minimum number of players required to start a game
	MinPlayers = 4

	// MaxNameLength is the maximum length of a player name, in runes
	MaxNameLength = 20

	// MaxClueLength is the maximum length of a clue, in runes
	MaxClueLength = 50

	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6

	// RoomCodeChars are the characters used for generating room codes (excluding ambiguous chars)
	RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// DefaultGracePeriod is how long an emptied room survives a disconnect
	DefaultGracePeriod = 5 * time.Second
)
