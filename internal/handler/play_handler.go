package handler

import (
	"net/http"

	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/service"
)

// PlayHandler handles the play-by-play log.
type PlayHandler struct {
	playSvc *service.PlayService
}

// NewPlayHandler creates a PlayHandler.
func NewPlayHandler(playSvc *service.PlayService) *PlayHandler {
	return &PlayHandler{playSvc: playSvc}
}

// ListPlays handles GET /api/v1/plays/{gameId}
func (h *PlayHandler) ListPlays(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathID(r, "gameId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	plays, err := h.playSvc.List(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plays)
}

// CreatePlay handles POST /api/v1/plays
func (h *PlayHandler) CreatePlay(w http.ResponseWriter, r *http.Request) {
	var req model.NewPlay
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	play, err := h.playSvc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, play)
}

// DeletePlay handles DELETE /api/v1/plays/{id}
func (h *PlayHandler) DeletePlay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid play id")
		return
	}
	if err := h.playSvc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
