package handlers

import (
	"encoding/json"

	"github.com/aaronzipp/undercover/internal/hub"
	"github.com/aaronzipp/undercover/internal/models"
	"github.com/aaronzipp/undercover/internal/render"
	"github.com/rs/zerolog/log"
)

// handleStartGame deals the roles and tells every player their own secret
func (ctx *Context) handleStartGame(playerID string, data json.RawMessage) error {
	var req roomRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	room, err := ctx.resolveRoom(playerID, req.RoomCode)
	if err != nil {
		return err
	}

	state, err := room.StartGame(playerID)
	if err != nil {
		log.Debug().Err(err).Str("room", room.Code()).Msg("start rejected")
		return err
	}
	log.Info().Str("room", room.Code()).Int("players", state.PlayerCount).Msg("game started")

	ctx.Hub.Broadcast(room.Code(), render.Message(hub.EventGameStarted, models.StateUpdate{GameState: state}))
	ctx.Hub.BroadcastPersonalized(room.Code(), func(pid string) []byte {
		private, err := room.PrivateState(pid)
		if err != nil {
			return nil
		}
		return render.Message(hub.EventRoleAssigned, models.RoleAssigned{PlayerData: private})
	})
	return nil
}

// handlePlayAgain returns a finished room to the lobby
func (ctx *Context) handlePlayAgain(playerID string, data json.RawMessage) error {
	var req roomRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	room, err := ctx.resolveRoom(playerID, req.RoomCode)
	if err != nil {
		return err
	}

	state, err := room.PlayAgain(playerID)
	if err != nil {
		return err
	}
	log.Info().Str("room", room.Code()).Msg("room reset to lobby")
	ctx.Hub.Broadcast(room.Code(), render.Message(hub.EventGameReset, models.StateUpdate{GameState: state}))
	return nil
}
