package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/aaronzipp/undercover/internal/game"
	"github.com/aaronzipp/undercover/internal/render"
	"github.com/rs/zerolog/log"
)

// Transport level error kinds, next to the game's own kinds
const (
	KindInvalidRequest = "InvalidRequest"
	KindUnknownCommand = "UnknownCommand"
	KindRateLimited    = "RateLimited"
	KindInternal       = "InternalError"
)

// defaultPlayerName is used when a client sends no name at all
const defaultPlayerName = "Player"

// requestError rejects a malformed frame before it reaches a room
type requestError struct {
	kind    string
	message string
}

func (e *requestError) Error() string {
	return e.message
}

var (
	errInvalidRequest = &requestError{KindInvalidRequest, "Malformed request"}
	errUnknownCommand = &requestError{KindUnknownCommand, "Unknown command"}
	errRateLimited    = &requestError{KindRateLimited, "Too many requests, slow down"}
)

// sanitize trims input, cuts it to maxLen runes and strips characters that
// could be read as markup
func sanitize(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > maxLen {
		text = string([]rune(text)[:maxLen])
	}
	text = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>{}[]\`, r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(text)
}

// playerName sanitizes a requested name, falling back to the default when
// the field was left out
func playerName(name string) string {
	if strings.TrimSpace(name) == "" {
		return defaultPlayerName
	}
	return sanitize(name, game.MaxNameLength)
}

// decode unmarshals a command payload. A missing payload decodes as {}.
func decode(data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errInvalidRequest
	}
	return nil
}

// resolveRoom finds the caller's room, by code when given and by
// membership otherwise
func (ctx *Context) resolveRoom(playerID, code string) (*game.Room, error) {
	if strings.TrimSpace(code) == "" {
		room, ok := ctx.Rooms.GetByParticipant(playerID)
		if !ok {
			return nil, game.ErrNotInRoom
		}
		return room, nil
	}

	room, err := ctx.Rooms.Get(code)
	if err != nil {
		return nil, err
	}
	if !room.HasPlayer(playerID) {
		return nil, game.ErrNotInRoom
	}
	return room, nil
}

// replyError sends err to the caller only
func (ctx *Context) replyError(playerID string, err error) {
	var gameErr *game.Error
	var reqErr *requestError
	switch {
	case errors.As(err, &gameErr):
		ctx.Hub.SendTo(playerID, render.Error(string(gameErr.Kind), gameErr.Message))
	case errors.As(err, &reqErr):
		ctx.Hub.SendTo(playerID, render.Error(reqErr.kind, reqErr.message))
	default:
		log.Error().Err(err).Str("player", playerID).Msg("command failed")
		ctx.Hub.SendTo(playerID, render.Error(KindInternal, "Something went wrong"))
	}
}
