package handlers

import (
	"net/http"

	"github.com/isdelr/tagpulse-be/internal/models"
	"github.com/rs/zerolog/log"
)

// HealthChecker reports the state of the running process.
type HealthChecker interface {
	Check() (models.Health, error)
}

// HealthHandler serves the health endpoint.
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Get handles the health request.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	health, err := h.checker.Check()
	if err != nil {
		log.Error().Err(err).Msg("Health check failed")
		writeError(w, http.StatusInternalServerError, "Health check failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, health)
}
