package handler

import (
	"net/http"

	"github.com/freeeve/sideline/api/internal/service"
)

// StatsHandler serves player statistics rebuilt from the play log.
type StatsHandler struct {
	statsSvc *service.StatsService
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(statsSvc *service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// PlayerStats handles GET /api/v1/stats/{gameId}
func (h *StatsHandler) PlayerStats(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathID(r, "gameId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	report, err := h.statsSvc.PlayerStats(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
