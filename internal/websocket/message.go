package websocket

import (
	"encoding/json"

	"github.com/isdelr/tagpulse-be/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	ActionEventCreated = "event.created"
	ActionError        = "error"
	ActionPing         = "ping"
	ActionPong         = "pong"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewEventMessage encodes an event.created message.
func NewEventMessage(event models.Event) []byte {
	return encode(Message{Action: ActionEventCreated, Payload: event})
}

// NewErrorMessage encodes an error message for a single client.
func NewErrorMessage(message string) []byte {
	return encode(Message{Action: ActionError, Payload: map[string]string{"message": message}})
}

// NewPongMessage encodes the reply to a client ping.
func NewPongMessage() []byte {
	return encode(Message{Action: ActionPong})
}

func encode(msg Message) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("action", msg.Action).Msg("Failed to encode websocket message")
		return nil
	}
	return data
}
