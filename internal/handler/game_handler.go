package handler

import (
	"encoding/json"
	"net/http"

	"github.com/freeeve/sideline/api/internal/football"
	"github.com/freeeve/sideline/api/internal/service"
)

// GameHandler serves the active game and the operator's controller commands.
type GameHandler struct {
	gameSvc *service.GameService
	playSvc *service.PlayService
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(gameSvc *service.GameService, playSvc *service.PlayService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc, playSvc: playSvc}
}

// GetActive handles GET /api/v1/game
func (h *GameHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	game, err := h.gameSvc.ActiveGame(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// UpdateGame handles PUT /api/v1/game/{id}
func (h *GameHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	var fields map[string]json.RawMessage
	if err := decodeJSON(r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	game, err := h.gameSvc.UpdateGame(r.Context(), id, fields)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// ResetGame handles POST /api/v1/game/reset
func (h *GameHandler) ResetGame(w http.ResponseWriter, r *http.Request) {
	id, err := h.gameSvc.ResetGame(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "gameId": id})
}

// writeResult renders a controller command result.
func writeResult(w http.ResponseWriter, r *http.Request, res *service.CommandResult, err error) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// RecordYardage handles POST /api/v1/game/plays/yardage
func (h *GameHandler) RecordYardage(w http.ResponseWriter, r *http.Request) {
	var req service.YardagePlayInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.gameSvc.RecordYardagePlay(r.Context(), req)
	writeResult(w, r, res, err)
}

// RecordKick handles POST /api/v1/game/plays/kick
func (h *GameHandler) RecordKick(w http.ResponseWriter, r *http.Request) {
	var req football.Kick
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.gameSvc.RecordKick(r.Context(), req)
	writeResult(w, r, res, err)
}

// Score handles POST /api/v1/game/score
func (h *GameHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req service.ScoreInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.gameSvc.Score(r.Context(), req)
	writeResult(w, r, res, err)
}

// AdjustScore handles POST /api/v1/game/score/adjust
func (h *GameHandler) AdjustScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Team  football.Side `json:"team"`
		Delta int           `json:"delta"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.gameSvc.AdjustScore(r.Context(), req.Team, req.Delta)
	writeResult(w, r, res, err)
}

// decodeTeam reads a {"team": "home"} body.
func decodeTeam(r *http.Request) (football.Side, bool) {
	var req struct {
		Team football.Side `json:"team"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return "", false
	}
	return req.Team, true
}

// UseTimeout handles POST /api/v1/game/timeout
func (h *GameHandler) UseTimeout(w http.ResponseWriter, r *http.Request) {
	team, ok := decodeTeam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.gameSvc.UseTimeout(r.Context(), team)
	writeResult(w, r, res, err)
}

// RestoreTimeout handles POST /api/v1/game/timeout/restore
func (h *GameHandler) RestoreTimeout(w http.ResponseWriter, r *http.Request) {
	team, ok := decodeTeam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.gameSvc.RestoreTimeout(r.Context(), team)
	writeResult(w, r, res, err)
}

// NextQuarter handles POST /api/v1/game/quarter/next
func (h *GameHandler) NextQuarter(w http.ResponseWriter, r *http.Request) {
	res, err := h.gameSvc.NextQuarter(r.Context())
	writeResult(w, r, res, err)
}

// NextDown handles POST /api/v1/game/down/next
func (h *GameHandler) NextDown(w http.ResponseWriter, r *http.Request) {
	res, err := h.gameSvc.NextDown(r.Context())
	writeResult(w, r, res, err)
}

// FirstDown handles POST /api/v1/game/down/first
func (h *GameHandler) FirstDown(w http.ResponseWriter, r *http.Request) {
	res, err := h.gameSvc.FirstDown(r.Context())
	writeResult(w, r, res, err)
}

// SetClock handles POST /api/v1/game/clock
func (h *GameHandler) SetClock(w http.ResponseWriter, r *http.Request) {
	var req service.ClockInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.gameSvc.SetClock(r.Context(), req)
	writeResult(w, r, res, err)
}

// DebugGame handles GET /api/v1/debug/game. It reports the active game
// together with its play count.
func (h *GameHandler) DebugGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.gameSvc.ActiveGame(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	plays, err := h.playSvc.List(r.Context(), game.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"activeGame": game,
		"playCount":  len(plays),
		"clock":      football.FormatClock(game.TimeLeft),
	})
}

// DebugGames handles GET /api/v1/debug/games
func (h *GameHandler) DebugGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameSvc.ListGames(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if games == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, games)
}
