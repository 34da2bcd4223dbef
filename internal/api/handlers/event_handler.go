package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/tagpulse-be/internal/services"
	"github.com/rs/zerolog/log"
)

// MissingFieldsMessage is returned when a create request lacks a required field.
const MissingFieldsMessage = "tagId, source and type are required"

// EventHandler handles HTTP requests related to tag events.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// CreateEventPayload is the body of POST /api/events.
type CreateEventPayload struct {
	TagID  string `json:"tagId"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// Create handles the request to record a new event.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateEventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.service.CreateEvent(payload.TagID, payload.Source, payload.Type)
	if err != nil {
		if errors.Is(err, services.ErrMissingField) {
			writeError(w, http.StatusBadRequest, MissingFieldsMessage)
			return
		}
		log.Error().Err(err).Str("tag_id", payload.TagID).Msg("Failed to create event")
		writeError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	log.Debug().Int64("event_id", event.ID).Str("tag_id", event.TagID).Str("type", event.Type).Msg("Event recorded")
	writeJSON(w, http.StatusCreated, event)
}

// GetAll handles the request to list every event, newest first.
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.GetAllEvents())
}

// GetStats handles the request for aggregate event statistics.
func (h *EventHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.GetStats())
}
