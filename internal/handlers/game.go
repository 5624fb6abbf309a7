package handlers

import (
	"encoding/json"

	"github.com/aaronzipp/undercover/internal/game"
	"github.com/aaronzipp/undercover/internal/hub"
	"github.com/aaronzipp/undercover/internal/models"
	"github.com/aaronzipp/undercover/internal/render"
	"github.com/rs/zerolog/log"
)

type clueRequest struct {
	RoomCode string `json:"room_code"`
	Clue     string `json:"clue"`
}

type voteRequest struct {
	RoomCode   string `json:"room_code"`
	VotedForID string `json:"voted_for_id"`
}

type guessRequest struct {
	RoomCode string `json:"room_code"`
	Guess    string `json:"guess"`
}

// handleSubmitClue records the current player's clue
func (ctx *Context) handleSubmitClue(playerID string, data json.RawMessage) error {
	var req clueRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	clue := sanitize(req.Clue, game.MaxClueLength)
	if clue == "" {
		return game.ErrEmptyClue
	}
	room, err := ctx.resolveRoom(playerID, req.RoomCode)
	if err != nil {
		return err
	}

	state, err := room.SubmitClue(playerID, clue)
	if err != nil {
		return err
	}
	log.Debug().Str("room", room.Code()).Str("player", playerID).Str("phase", state.Phase.String()).Msg("clue submitted")
	ctx.Hub.Broadcast(room.Code(), render.Message(hub.EventClueSubmitted, models.StateUpdate{GameState: state}))
	return nil
}

// handleSubmitVote records a vote and announces the elimination once the
// ballot is complete
func (ctx *Context) handleSubmitVote(playerID string, data json.RawMessage) error {
	var req voteRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	if req.VotedForID == "" {
		return game.ErrInvalidVoteTarget
	}
	room, err := ctx.resolveRoom(playerID, req.RoomCode)
	if err != nil {
		return err
	}

	out, err := room.SubmitVote(playerID, req.VotedForID)
	if err != nil {
		return err
	}
	ctx.broadcastVoteResult(room.Code(), out)
	if out.Ended {
		ctx.broadcastGameEnded(room, out.State)
	}
	return nil
}

// handleMrWhiteGuess takes the eliminated Mr. White's guess, which always
// ends the game
func (ctx *Context) handleMrWhiteGuess(playerID string, data json.RawMessage) error {
	var req guessRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	room, err := ctx.resolveRoom(playerID, req.RoomCode)
	if err != nil {
		return err
	}

	guess := sanitize(req.Guess, game.MaxClueLength)
	out, err := room.Guess(playerID, guess)
	if err != nil {
		return err
	}
	log.Info().Str("room", room.Code()).Bool("correct", out.Correct).Msg("mr white guessed")
	ctx.broadcastGameEnded(room, out.State)
	return nil
}
