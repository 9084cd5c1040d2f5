package service

import (
	"context"

	"github.com/freeeve/sideline/api/internal/football"
	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/repository"
)

// StatsService rebuilds player statistics from a game's play log.
type StatsService struct {
	games   repository.GameRepository
	plays   repository.PlayRepository
	rosters repository.RosterRepository
}

// NewStatsService creates a StatsService.
func NewStatsService(games repository.GameRepository, plays repository.PlayRepository, rosters repository.RosterRepository) *StatsService {
	return &StatsService{games: games, plays: plays, rosters: rosters}
}

// PlayerStats parses every play of the game and aggregates per-player and
// per-team summaries against the current rosters.
func (s *StatsService) PlayerStats(ctx context.Context, gameID int64) (*football.Report, error) {
	g, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}
	plays, err := s.plays.ListByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	roster, err := s.rosters.Get(ctx)
	if err != nil {
		return nil, err
	}
	report := football.Aggregate(logged(plays), g.Teams(), roster)
	return &report, nil
}

func logged(plays []model.Play) []football.LoggedPlay {
	out := make([]football.LoggedPlay, len(plays))
	for i, p := range plays {
		out[i] = p.Logged()
	}
	return out
}
