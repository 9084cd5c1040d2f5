package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/freeeve/sideline/api/internal/football"
	"github.com/freeeve/sideline/api/internal/service"
)

const maxRosterUpload = 1 << 20

// RosterHandler handles both teams' rosters and kicker assignments.
type RosterHandler struct {
	rosterSvc *service.RosterService
}

// NewRosterHandler creates a RosterHandler.
func NewRosterHandler(rosterSvc *service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

func pathSide(w http.ResponseWriter, r *http.Request) (football.Side, bool) {
	side, err := football.ParseSide(r.PathValue("side"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return side, true
}

// GetRosters handles GET /api/v1/rosters
func (h *RosterHandler) GetRosters(w http.ResponseWriter, r *http.Request) {
	roster, err := h.rosterSvc.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

// AddPlayer handles POST /api/v1/rosters/{side}/players
func (h *RosterHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	side, ok := pathSide(w, r)
	if !ok {
		return
	}
	var req service.PlayerInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	player, err := h.rosterSvc.AddPlayer(r.Context(), side, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

// RemovePlayer handles DELETE /api/v1/rosters/{side}/players/{id}
func (h *RosterHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	side, ok := pathSide(w, r)
	if !ok {
		return
	}
	if err := h.rosterSvc.RemovePlayer(r.Context(), side, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AssignKicker handles PUT /api/v1/rosters/{side}/kicker
func (h *RosterHandler) AssignKicker(w http.ResponseWriter, r *http.Request) {
	side, ok := pathSide(w, r)
	if !ok {
		return
	}
	var req struct {
		PlayerID string `json:"playerId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	roster, err := h.rosterSvc.AssignKicker(r.Context(), side, req.PlayerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

// ImportRoster handles POST /api/v1/rosters/{side}/import. The body is either
// a multipart form with a "file" part or the raw CSV text.
func (h *RosterHandler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	side, ok := pathSide(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRosterUpload)
	defer r.Body.Close()

	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file")
			return
		}
		defer file.Close()
		src = file
	}

	n, err := h.rosterSvc.Import(r.Context(), side, src)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

// ExportRoster handles GET /api/v1/rosters/{side}/export
func (h *RosterHandler) ExportRoster(w http.ResponseWriter, r *http.Request) {
	side, ok := pathSide(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(side)+`_roster.csv"`)
	if err := h.rosterSvc.Export(r.Context(), side, w); err != nil {
		writeServiceError(w, r, err)
	}
}

// Lookup handles GET /api/v1/rosters/lookup?number=
func (h *RosterHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(r.URL.Query().Get("number"))
	if number == "" {
		writeError(w, http.StatusBadRequest, "number is required")
		return
	}
	matches, err := h.rosterSvc.Lookup(r.Context(), number)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if matches == nil {
		matches = []football.PlayerMatch{}
	}
	writeJSON(w, http.StatusOK, matches)
}
