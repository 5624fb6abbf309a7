package render

import (
	"encoding/json"

	"github.com/aaronzipp/undercover/internal/hub"
	"github.com/aaronzipp/undercover/internal/models"
	"github.com/rs/zerolog/log"
)

// Message encodes an outbound event as an envelope frame
func Message(event string, data any) []byte {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("encoding event payload")
		return nil
	}
	frame, err := json.Marshal(models.Envelope{Type: event, Data: payload})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("encoding envelope")
		return nil
	}
	return frame
}

// Error encodes an error event for the caller
func Error(kind, message string) []byte {
	return Message(hub.EventError, models.ErrorPayload{Kind: kind, Message: message})
}
