package handlers

import (
	"encoding/json"
	"time"

	"github.com/aaronzipp/undercover/internal/hub"
	"github.com/aaronzipp/undercover/internal/models"
	"github.com/aaronzipp/undercover/internal/render"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// writeWait bounds a single frame write
const writeWait = 10 * time.Second

// HandleWebSocket upgrades the request and serves one participant until the
// connection drops
func (ctx *Context) HandleWebSocket(c *gin.Context) {
	conn, err := ctx.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already answered the request
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	playerID := uuid.NewString()
	client := hub.NewClient(playerID, ctx.Config.Transport.SendBuffer)
	ctx.Hub.Register(client)
	log.Info().Str("player", playerID).Str("remote", c.ClientIP()).Msg("client connected")

	ctx.Hub.SendTo(playerID, render.Message(hub.EventConnected, models.Connected{
		PlayerID: playerID,
		Message:  "Connected to server",
	}))

	go ctx.writePump(conn, client)
	ctx.readPump(conn, client)
	ctx.disconnect(client)
}

func (ctx *Context) readPump(conn *websocket.Conn, client *hub.Client) {
	t := ctx.Config.Transport
	defer conn.Close()

	conn.SetReadLimit(t.ReadLimit)
	conn.SetReadDeadline(time.Now().Add(t.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(t.PongWait))
	})
	limiter := rate.NewLimiter(rate.Limit(t.RateLimit), t.RateBurst)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("player", client.ID).Msg("websocket closed unexpectedly")
			}
			return
		}
		if !limiter.Allow() {
			ctx.replyError(client.ID, errRateLimited)
			continue
		}

		var env models.Envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Type == "" {
			ctx.replyError(client.ID, errInvalidRequest)
			continue
		}
		log.Debug().Str("player", client.ID).Str("event", env.Type).Msg("command received")
		if err := ctx.dispatch(client.ID, env); err != nil {
			ctx.replyError(client.ID, err)
		}
	}
}

func (ctx *Context) writePump(conn *websocket.Conn, client *hub.Client) {
	ticker := time.NewTicker(ctx.Config.Transport.PingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg := <-client.Send():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-client.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// dispatch routes one inbound command
func (ctx *Context) dispatch(playerID string, env models.Envelope) error {
	switch env.Type {
	case hub.CommandCreateRoom:
		return ctx.handleCreateRoom(playerID, env.Data)
	case hub.CommandJoinRoom:
		return ctx.handleJoinRoom(playerID, env.Data)
	case hub.CommandLeaveRoom:
		return ctx.handleLeaveRoom(playerID, env.Data)
	case hub.CommandUpdateSettings:
		return ctx.handleUpdateSettings(playerID, env.Data)
	case hub.CommandStartGame:
		return ctx.handleStartGame(playerID, env.Data)
	case hub.CommandSubmitClue:
		return ctx.handleSubmitClue(playerID, env.Data)
	case hub.CommandSubmitVote:
		return ctx.handleSubmitVote(playerID, env.Data)
	case hub.CommandMrWhiteGuess:
		return ctx.handleMrWhiteGuess(playerID, env.Data)
	case hub.CommandPlayAgain:
		return ctx.handlePlayAgain(playerID, env.Data)
	default:
		return errUnknownCommand
	}
}

// disconnect drops the participant from the hub and from their room. An
// emptied room gets the grace period before it is deleted.
func (ctx *Context) disconnect(client *hub.Client) {
	ctx.Hub.Unregister(client)
	log.Info().Str("player", client.ID).Msg("client disconnected")

	room, ok := ctx.Rooms.GetByParticipant(client.ID)
	if !ok {
		return
	}
	if err := ctx.leaveRoom(room, client.ID, false); err != nil {
		log.Debug().Err(err).Str("player", client.ID).Msg("leaving room on disconnect")
	}
}
