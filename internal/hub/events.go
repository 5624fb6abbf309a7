package hub

// Inbound command types
const (
	CommandCreateRoom     = "create_room"
	CommandJoinRoom       = "join_room"
	CommandLeaveRoom      = "leave_room"
	CommandUpdateSettings = "update_settings"
	CommandStartGame      = "start_game"
	CommandSubmitClue     = "submit_clue"
	CommandSubmitVote     = "submit_vote"
	CommandMrWhiteGuess   = "mr_white_guess"
	CommandPlayAgain      = "play_again"
)

// Outbound event types
const (
	EventConnected       = "connected"
	EventRoomCreated     = "room_created"
	EventRoomJoined      = "room_joined"
	EventPlayerJoined    = "player_joined"
	EventPlayerLeft      = "player_left"
	EventSettingsUpdated = "settings_updated"
	EventGameStarted     = "game_started"
	EventRoleAssigned    = "role_assigned"
	EventClueSubmitted   = "clue_submitted"
	EventVoteSubmitted   = "vote_submitted"
	EventGameEnded       = "game_ended"
	EventGameReset       = "game_reset"
	EventError           = "error"
)
