// Command viewer polls a scoreboard server and prints the board each refresh.
// Send SIGUSR1 to pause or resume refreshing.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/sideline/api/internal/config"
	"github.com/freeeve/sideline/api/internal/logger"
	"github.com/freeeve/sideline/api/internal/poller"
)

func main() {
	logger.Init(logger.OptionsFromEnv())
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Config load failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := poller.NewClient(cfg.ViewerURL, nil)
	gate := &poller.Gate{}
	p := &poller.Poller[*poller.Scoreboard]{
		Interval: cfg.PollInterval,
		Fetch:    client.FetchScoreboard,
		Gate:     gate,
		OnSnapshot: func(sb *poller.Scoreboard) {
			os.Stdout.WriteString("\033[H\033[2J")
			render(os.Stdout, sb)
		},
		OnError: func(err error) {
			log.Debug().Err(err).Msg("Refresh failed")
		},
	}

	toggle := make(chan os.Signal, 1)
	signal.Notify(toggle, syscall.SIGUSR1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-toggle:
				if gate.Toggle() {
					log.Info().Msg("Refresh paused")
				} else {
					log.Info().Msg("Refresh resumed")
				}
			}
		}
	}()

	log.Info().Str("server", cfg.ViewerURL).Dur("interval", cfg.PollInterval).Msg("Viewer started")
	p.Run(ctx)
	log.Info().Msg("Viewer stopped")
}
