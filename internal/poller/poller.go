// Package poller drives the public viewer: it refreshes the scoreboard at a
// fixed interval and can be paused while an operator is editing.
package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/freeeve/sideline/api/internal/logger"
)

// Gate is the pause/resume switch checked before every refresh.
type Gate struct {
	mu     sync.Mutex
	paused bool
}

// Pause stops refreshes until Resume.
func (g *Gate) Pause() {
	g.mu.Lock()
	g.paused = true
	g.mu.Unlock()
}

// Resume lets refreshes run again.
func (g *Gate) Resume() {
	g.mu.Lock()
	g.paused = false
	g.mu.Unlock()
}

// Toggle flips the gate and reports whether it is now paused.
func (g *Gate) Toggle() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = !g.paused
	return g.paused
}

// Paused reports whether refreshes are suspended. A nil Gate is never paused.
func (g *Gate) Paused() bool {
	if g == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

// Poller fetches a snapshot every Interval while its Gate is open.
type Poller[T any] struct {
	Interval time.Duration
	Fetch    func(ctx context.Context) (T, error)
	Gate     *Gate

	// OnSnapshot receives every successful fetch.
	OnSnapshot func(T)
	// OnError receives every failed fetch. The poller keeps going.
	OnError func(error)

	connected atomic.Bool
	log       zerolog.Logger
}

// Connected reports whether the last fetch succeeded.
func (p *Poller[T]) Connected() bool {
	return p.connected.Load()
}

// Run fetches once immediately and then on every tick until ctx is done.
// Ticks that land while the gate is paused are skipped, not queued.
func (p *Poller[T]) Run(ctx context.Context) {
	p.log = logger.Component("poller")
	interval := p.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller[T]) refresh(ctx context.Context) {
	if p.Gate.Paused() {
		p.log.Debug().Msg("Refresh skipped, gate paused")
		return
	}
	snap, err := p.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if p.connected.Swap(false) {
			p.log.Warn().Err(err).Msg("Lost connection to scoreboard")
		}
		if p.OnError != nil {
			p.OnError(err)
		}
		return
	}
	if !p.connected.Swap(true) {
		p.log.Info().Msg("Connected to scoreboard")
	}
	if p.OnSnapshot != nil {
		p.OnSnapshot(snap)
	}
}
