package handler

import (
	"net/http"

	"github.com/freeeve/sideline/api/internal/auth"
	"github.com/freeeve/sideline/api/internal/middleware"
	"github.com/freeeve/sideline/api/internal/model"
)

// Router holds every handler the API serves.
type Router struct {
	JWT          *auth.JWTManager
	LoginLimiter *middleware.RateLimiter

	Auth   *AuthHandler
	Game   *GameHandler
	Play   *PlayHandler
	User   *UserHandler
	Roster *RosterHandler
	Stats  *StatsHandler
	WS     *WSHandler
}

// Mux builds the route table. Public reads stay outside the bearer check;
// operator commands require a token and user management the admin role.
func (rt *Router) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	authMw := auth.Middleware(rt.JWT)
	adminOnly := auth.RequireRole(model.RoleAdmin)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public
	login := http.Handler(http.HandlerFunc(rt.Auth.Login))
	if rt.LoginLimiter != nil {
		login = rt.LoginLimiter.Handler(login)
	}
	mux.Handle("POST /api/v1/login", login)
	mux.HandleFunc("GET /api/v1/game", rt.Game.GetActive)
	mux.HandleFunc("GET /api/v1/plays/{gameId}", rt.Play.ListPlays)
	mux.HandleFunc("GET /api/v1/stats/{gameId}", rt.Stats.PlayerStats)
	mux.HandleFunc("GET /api/v1/rosters/lookup", rt.Roster.Lookup)
	mux.HandleFunc("GET /api/v1/debug/game", rt.Game.DebugGame)
	mux.HandleFunc("GET /api/v1/debug/games", rt.Game.DebugGames)
	if rt.WS != nil {
		mux.HandleFunc("GET /api/v1/ws", rt.WS.ServeWS)
	}

	// Operator
	api := http.NewServeMux()
	api.HandleFunc("GET /me", rt.Auth.Me)
	api.HandleFunc("PUT /game/{id}", rt.Game.UpdateGame)
	api.HandleFunc("POST /game/reset", rt.Game.ResetGame)
	api.HandleFunc("POST /game/plays/yardage", rt.Game.RecordYardage)
	api.HandleFunc("POST /game/plays/kick", rt.Game.RecordKick)
	api.HandleFunc("POST /game/score", rt.Game.Score)
	api.HandleFunc("POST /game/score/adjust", rt.Game.AdjustScore)
	api.HandleFunc("POST /game/timeout", rt.Game.UseTimeout)
	api.HandleFunc("POST /game/timeout/restore", rt.Game.RestoreTimeout)
	api.HandleFunc("POST /game/quarter/next", rt.Game.NextQuarter)
	api.HandleFunc("POST /game/down/next", rt.Game.NextDown)
	api.HandleFunc("POST /game/down/first", rt.Game.FirstDown)
	api.HandleFunc("POST /game/clock", rt.Game.SetClock)
	api.HandleFunc("POST /plays", rt.Play.CreatePlay)
	api.HandleFunc("DELETE /plays/{id}", rt.Play.DeletePlay)
	api.HandleFunc("GET /rosters", rt.Roster.GetRosters)
	api.HandleFunc("POST /rosters/{side}/players", rt.Roster.AddPlayer)
	api.HandleFunc("DELETE /rosters/{side}/players/{id}", rt.Roster.RemovePlayer)
	api.HandleFunc("PUT /rosters/{side}/kicker", rt.Roster.AssignKicker)
	api.HandleFunc("POST /rosters/{side}/import", rt.Roster.ImportRoster)
	api.HandleFunc("GET /rosters/{side}/export", rt.Roster.ExportRoster)
	api.Handle("GET /users", adminOnly(http.HandlerFunc(rt.User.ListUsers)))
	api.Handle("POST /users", adminOnly(http.HandlerFunc(rt.User.CreateUser)))

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", authMw(api)))
	return mux
}
