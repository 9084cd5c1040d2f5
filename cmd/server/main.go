package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/sideline/api/internal/auth"
	"github.com/freeeve/sideline/api/internal/config"
	"github.com/freeeve/sideline/api/internal/handler"
	"github.com/freeeve/sideline/api/internal/logger"
	"github.com/freeeve/sideline/api/internal/middleware"
	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/repository"
	"github.com/freeeve/sideline/api/internal/repository/postgres"
	redisrepo "github.com/freeeve/sideline/api/internal/repository/redis"
	"github.com/freeeve/sideline/api/internal/repository/sqlite"
	"github.com/freeeve/sideline/api/internal/service"
)

type stores struct {
	users repository.UserRepository
	games repository.GameRepository
	plays repository.PlayRepository
	close func() error
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Store == "sqlite" {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &stores{
			users: sqlite.NewUserRepo(db),
			games: sqlite.NewGameRepo(db),
			plays: sqlite.NewPlayRepo(db),
			close: func() error { return sqlite.Close(db) },
		}, nil
	}

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &stores{
		users: postgres.NewUserRepo(db),
		games: postgres.NewGameRepo(db),
		plays: postgres.NewPlayRepo(db),
		close: db.Close,
	}, nil
}

func main() {
	logger.Init(logger.OptionsFromEnv())
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Config load failed")
	}
	log.Info().Str("store", cfg.Store).Str("port", cfg.Port).Msg("Config loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer st.close()

	// Redis is optional: without it rosters live in memory and reads go to the store.
	var (
		rosters repository.RosterRepository = repository.NewMemoryRosterStore()
		cache   repository.GameCache
	)
	if cfg.RedisURL != "" {
		redisClient, err := redisrepo.NewClient(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, using in-memory rosters and no snapshot cache")
		} else {
			defer redisClient.Close()
			rosters = redisClient
			cache = redisClient
		}
	}

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	// WebSocket hub
	wsHub := handler.NewHub()

	// Services
	authSvc := service.NewAuthService(st.users, jwtMgr)
	userSvc := service.NewUserService(st.users, authSvc)
	gameSvc := service.NewGameService(st.games, st.plays, rosters, cache, wsHub)
	playSvc := service.NewPlayService(st.plays, st.games, wsHub)
	rosterSvc := service.NewRosterService(rosters)
	statsSvc := service.NewStatsService(st.games, st.plays, rosters)

	seed := []struct{ username, password, role string }{
		{cfg.AdminUsername, cfg.AdminPassword, model.RoleAdmin},
		{cfg.ScorekeeperUsername, cfg.ScorekeeperPassword, model.RoleScorekeeper},
	}
	for _, u := range seed {
		if u.username == "" {
			continue
		}
		if err := authSvc.EnsureUser(ctx, u.username, u.password, u.role); err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("Seeding user failed")
		}
	}

	// Make sure a game exists before the first viewer asks.
	if _, err := gameSvc.ActiveGame(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to load active game (non-fatal)")
	}

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst)
	router := &handler.Router{
		JWT:          jwtMgr,
		LoginLimiter: loginLimiter,
		Auth:         handler.NewAuthHandler(authSvc),
		Game:         handler.NewGameHandler(gameSvc, playSvc),
		Play:         handler.NewPlayHandler(playSvc),
		User:         handler.NewUserHandler(userSvc),
		Roster:       handler.NewRosterHandler(rosterSvc),
		Stats:        handler.NewStatsHandler(statsSvc),
		WS:           handler.NewWSHandler(wsHub, jwtMgr, gameSvc.ActiveGame),
	}

	// Apply global middleware
	root := middleware.Chain(router.Mux(), middleware.Logger, middleware.Recover, middleware.CORS(cfg.CORSOrigin), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Game clock
	go service.NewClockRunner(gameSvc, cfg.ClockTick).Start(ctx)

	// Forget idle login clients
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				loginLimiter.Sweep()
			}
		}
	}()

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
