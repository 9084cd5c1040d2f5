package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/repository"
)

// PlayService manages the play-by-play log. Records are immutable once
// written; only deletion is supported.
type PlayService struct {
	plays       repository.PlayRepository
	games       repository.GameRepository
	broadcaster Broadcaster
}

// NewPlayService creates a PlayService.
func NewPlayService(plays repository.PlayRepository, games repository.GameRepository, broadcaster Broadcaster) *PlayService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &PlayService{plays: plays, games: games, broadcaster: broadcaster}
}

// List returns a game's plays, newest first.
func (s *PlayService) List(ctx context.Context, gameID int64) ([]model.Play, error) {
	return s.plays.ListByGame(ctx, gameID)
}

// Create appends a free-form play record to a game.
func (s *PlayService) Create(ctx context.Context, in model.NewPlay) (*model.Play, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	g, err := s.games.FindByID(ctx, in.GameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}
	p, err := s.plays.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	log.Info().Int64("gameId", in.GameID).Int64("playId", p.ID).Str("play", p.Text).Msg("Play added")
	s.broadcaster.BroadcastGameEvent(in.GameID, EventPlayAdded, p)
	return p, nil
}

// Delete removes one play by id.
func (s *PlayService) Delete(ctx context.Context, id int64) error {
	if err := s.plays.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlayNotFound
		}
		return err
	}
	log.Info().Int64("playId", id).Msg("Play deleted")
	s.broadcaster.BroadcastGameEvent(0, EventPlayDeleted, map[string]int64{"id": id})
	return nil
}
