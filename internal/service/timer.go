package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// ClockRunner counts the active game's clock down while it is running. Each
// tick is persisted; the stored time_left is authoritative after a restart.
type ClockRunner struct {
	games    *GameService
	interval time.Duration
}

// NewClockRunner creates a ClockRunner ticking every interval.
func NewClockRunner(games *GameService, interval time.Duration) *ClockRunner {
	if interval <= 0 {
		interval = time.Second
	}
	return &ClockRunner{games: games, interval: interval}
}

// Start blocks, ticking until ctx is cancelled.
func (c *ClockRunner) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", c.interval).Msg("Game clock runner started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Game clock runner stopped")
			return
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

// tick is best-effort: failures are logged and the next tick retries.
func (c *ClockRunner) tick(ctx context.Context) {
	expired, err := c.games.Tick(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Error().Err(err).Msg("Clock tick failed")
		}
		return
	}
	if expired {
		log.Info().Msg("Game clock reached zero")
	}
}
