package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aaronzipp/undercover/internal/game"
	"github.com/aaronzipp/undercover/internal/hub"
	"github.com/aaronzipp/undercover/internal/models"
	"github.com/aaronzipp/undercover/internal/render"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type createRoomRequest struct {
	PlayerName string `json:"player_name"`
}

type joinRoomRequest struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
}

type roomRequest struct {
	RoomCode string `json:"room_code"`
}

type updateSettingsRequest struct {
	RoomCode        string `json:"room_code"`
	UndercoverCount *int   `json:"undercover_count"`
}

// handleCreateRoom opens a room with the caller as host
func (ctx *Context) handleCreateRoom(playerID string, data json.RawMessage) error {
	var req createRoomRequest
	if err := decode(data, &req); err != nil {
		return err
	}

	room, err := ctx.Rooms.Create(playerID, playerName(req.PlayerName))
	if err != nil {
		return err
	}
	ctx.Hub.Join(room.Code(), playerID)

	private, err := room.PrivateState(playerID)
	if err != nil {
		return err
	}
	ctx.Hub.SendTo(playerID, render.Message(hub.EventRoomCreated, models.RoomEntered{
		RoomCode:   room.Code(),
		GameState:  room.PublicState(),
		PlayerData: private,
	}))
	return nil
}

// handleJoinRoom seats the caller in an existing lobby
func (ctx *Context) handleJoinRoom(playerID string, data json.RawMessage) error {
	var req joinRoomRequest
	if err := decode(data, &req); err != nil {
		return err
	}

	room, state, err := ctx.Rooms.Join(req.RoomCode, playerID, playerName(req.PlayerName))
	if err != nil {
		return err
	}
	ctx.Hub.Join(room.Code(), playerID)

	private, err := room.PrivateState(playerID)
	if err != nil {
		return err
	}
	ctx.Hub.SendTo(playerID, render.Message(hub.EventRoomJoined, models.RoomEntered{
		RoomCode:   room.Code(),
		GameState:  state,
		PlayerData: private,
	}))
	ctx.Hub.Broadcast(room.Code(), render.Message(hub.EventPlayerJoined, models.StateUpdate{GameState: state}))
	return nil
}

// handleLeaveRoom removes the caller; a room left empty is deleted at once
func (ctx *Context) handleLeaveRoom(playerID string, data json.RawMessage) error {
	var req roomRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	room, err := ctx.resolveRoom(playerID, req.RoomCode)
	if err != nil {
		return err
	}
	return ctx.leaveRoom(room, playerID, true)
}

// handleUpdateSettings lets the host change the undercover count
func (ctx *Context) handleUpdateSettings(playerID string, data json.RawMessage) error {
	var req updateSettingsRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	if req.UndercoverCount == nil {
		return errInvalidRequest
	}
	room, err := ctx.resolveRoom(playerID, req.RoomCode)
	if err != nil {
		return err
	}

	state, err := room.UpdateSettings(playerID, *req.UndercoverCount)
	if err != nil {
		return err
	}
	log.Info().Str("room", room.Code()).Int("undercovers", state.UndercoverCount).Msg("settings updated")
	ctx.Hub.Broadcast(room.Code(), render.Message(hub.EventSettingsUpdated, models.StateUpdate{GameState: state}))
	return nil
}

// leaveRoom removes playerID and tells the others. A voluntary leave deletes
// an emptied room immediately; a disconnect gives it the grace period.
func (ctx *Context) leaveRoom(room *game.Room, playerID string, voluntary bool) error {
	dep, err := room.RemovePlayer(playerID)
	if err != nil {
		return err
	}
	code := room.Code()
	ctx.Hub.Leave(code, playerID)
	log.Info().Str("room", code).Str("player", playerID).Bool("voluntary", voluntary).
		Int("listeners", ctx.Hub.RoomSize(code)).Msg("player left")

	if dep.Empty {
		if voluntary {
			ctx.Rooms.DeleteIfEmpty(code)
		} else {
			ctx.Rooms.ScheduleCleanup(code)
		}
	}

	left := render.Message(hub.EventPlayerLeft, models.PlayerLeft{PlayerID: playerID, GameState: dep.State})
	if voluntary {
		ctx.Hub.SendTo(playerID, left)
	}
	if dep.Empty {
		return nil
	}

	ctx.Hub.Broadcast(code, left)
	if dep.Votes != nil {
		ctx.broadcastVoteResult(code, *dep.Votes)
	}
	if dep.Ended {
		ctx.broadcastGameEnded(room, dep.State)
	}
	return nil
}

// HandleRoomState returns the public snapshot of a room
func (ctx *Context) HandleRoomState(c *gin.Context) {
	room, ok := ctx.lookupRoom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, room.PublicState())
}

// HandleRoomQR serves a QR code that opens the room's join page
func (ctx *Context) HandleRoomQR(c *gin.Context) {
	room, ok := ctx.lookupRoom(c)
	if !ok {
		return
	}
	png, err := render.JoinQRCode(ctx.Config.Server.PublicURL, room.Code(), render.DefaultQRSize)
	if err != nil {
		log.Error().Err(err).Str("room", room.Code()).Msg("rendering qr code")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render qr code"})
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", png)
}

// lookupRoom resolves the :code parameter, answering 400 or 404 itself
func (ctx *Context) lookupRoom(c *gin.Context) (*game.Room, bool) {
	room, err := ctx.Rooms.Get(c.Param("code"))
	switch {
	case errors.Is(err, game.ErrInvalidRoomCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	case err != nil:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return room, true
}
