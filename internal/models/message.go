package models

import "encoding/json"

// Envelope is the JSON frame exchanged over the websocket in both directions.
// Data stays raw on the way in so each command decodes its own payload.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ErrorPayload is the body of an "error" event
type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
