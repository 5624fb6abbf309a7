package game

// Kind classifies a rejected command. It is sent to the caller verbatim.
type Kind string

const (
	KindInvalidConfiguration Kind = "InvalidConfiguration"
	KindNotYourTurn          Kind = "NotYourTurn"
	KindPlayerDead           Kind = "PlayerDead"
	KindRoomNotFound         Kind = "RoomNotFound"
	KindInvalidRoomCode      Kind = "InvalidRoomCode"
	KindInvalidPlayerName    Kind = "InvalidPlayerName"
	KindDuplicateName        Kind = "DuplicateName"
	KindNotHost              Kind = "NotHost"
	KindGameInProgress       Kind = "GameInProgress"
	KindInvalidVoteTarget    Kind = "InvalidVoteTarget"
	KindInvalidPhase         Kind = "InvalidPhase"
	KindNotInRoom            Kind = "NotInRoom"
	KindAlreadyInRoom        Kind = "AlreadyInRoom"
	KindNotMrWhite           Kind = "NotMrWhite"
	KindInvalidClue          Kind = "InvalidClue"
)

// Error is a locally recoverable rejection. A command that returns an Error
// has not mutated the room.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrTooFewPlayers     = &Error{KindInvalidConfiguration, "Need at least 4 players to start"}
	ErrUndercoverCount   = &Error{KindInvalidConfiguration, "Undercover count must leave at least one civilian and Mr. White"}
	ErrNotYourTurn       = &Error{KindNotYourTurn, "Not your turn"}
	ErrPlayerDead        = &Error{KindPlayerDead, "Dead players cannot vote"}
	ErrRoomNotFound      = &Error{KindRoomNotFound, "Room not found"}
	ErrInvalidRoomCode   = &Error{KindInvalidRoomCode, "Invalid room code"}
	ErrInvalidPlayerName = &Error{KindInvalidPlayerName, "Invalid player name"}
	ErrDuplicateName     = &Error{KindDuplicateName, "A player with this name already exists in the room"}
	ErrNotHost           = &Error{KindNotHost, "Only the host can do that"}
	ErrGameInProgress    = &Error{KindGameInProgress, "Game already in progress"}
	ErrInvalidVoteTarget = &Error{KindInvalidVoteTarget, "Invalid vote target"}
	ErrInvalidPhase      = &Error{KindInvalidPhase, "Not allowed in the current phase"}
	ErrNotInRoom         = &Error{KindNotInRoom, "You are not in this room"}
	ErrAlreadyInRoom     = &Error{KindAlreadyInRoom, "Leave your current room first"}
	ErrNotMrWhite        = &Error{KindNotMrWhite, "Only Mr. White can guess"}
	ErrEmptyClue         = &Error{KindInvalidClue, "Clue cannot be empty"}
)
