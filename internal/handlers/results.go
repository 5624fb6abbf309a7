package handlers

import (
	"github.com/aaronzipp/undercover/internal/game"
	"github.com/aaronzipp/undercover/internal/hub"
	"github.com/aaronzipp/undercover/internal/models"
	"github.com/aaronzipp/undercover/internal/render"
	"github.com/rs/zerolog/log"
)

// broadcastVoteResult sends ballot progress, or the elimination once the
// ballot resolved
func (ctx *Context) broadcastVoteResult(code string, out game.VoteOutcome) {
	payload := models.VoteSubmitted{GameState: out.State}
	if out.Resolved {
		payload.EliminatedPlayerID = out.EliminatedID
		payload.VoteCounts = out.Tally
		log.Info().Str("room", code).Str("eliminated", out.EliminatedID).Msg("vote resolved")
	}
	ctx.Hub.Broadcast(code, render.Message(hub.EventVoteSubmitted, payload))
}

// broadcastGameEnded reveals every role and word to the room
func (ctx *Context) broadcastGameEnded(room *game.Room, state models.PublicState) {
	reveal, ok := room.Reveal()
	if !ok {
		// someone already reset the room
		return
	}
	log.Info().Str("room", room.Code()).Str("winner", string(reveal.Winner)).Msg("game ended")
	ctx.Hub.Broadcast(room.Code(), render.Message(hub.EventGameEnded, models.GameEnded{
		GameState: state,
		Reveal:    reveal,
	}))
}
