package models

// Phase represents the current phase of a room
type Phase string

const (
	PhaseLobby        Phase = "lobby"          // Waiting for players, settings editable
	PhasePlaying      Phase = "playing"        // Players give clues in turn order
	PhaseVoting       Phase = "voting"         // Every alive player votes for a suspect
	PhaseMrWhiteGuess Phase = "mr_white_guess" // Eliminated Mr. White gets one guess
	PhaseResults      Phase = "results"        // Winner decided, secrets revealed
)

var phaseTransitions = map[Phase][]Phase{
	PhaseLobby:        {PhasePlaying},
	PhasePlaying:      {PhaseVoting, PhaseResults},
	PhaseVoting:       {PhasePlaying, PhaseMrWhiteGuess, PhaseResults},
	PhaseMrWhiteGuess: {PhaseResults},
	PhaseResults:      {PhaseLobby},
}

// String returns the wire representation of the phase
func (p Phase) String() string {
	return string(p)
}

// Valid reports whether p is one of the known phases
func (p Phase) Valid() bool {
	_, ok := phaseTransitions[p]
	return ok
}

// CanTransitionTo checks if moving from p to target is a legal transition
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, next := range phaseTransitions[p] {
		if next == target {
			return true
		}
	}
	return false
}

// InGame reports whether a game is running (roles dealt, no winner yet)
func (p Phase) InGame() bool {
	return p == PhasePlaying || p == PhaseVoting || p == PhaseMrWhiteGuess
}
