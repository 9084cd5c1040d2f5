package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/sideline/api/internal/football"
	"github.com/freeeve/sideline/api/internal/repository"
)

// RosterService edits both teams' rosters and kicker assignments.
type RosterService struct {
	store repository.RosterRepository
	mu    sync.Mutex
}

// NewRosterService creates a RosterService.
func NewRosterService(store repository.RosterRepository) *RosterService {
	return &RosterService{store: store}
}

// PlayerInput is the body of an add-player request.
type PlayerInput struct {
	Number   string `json:"number" validate:"required,max=8"`
	Name     string `json:"name" validate:"required,max=64"`
	Position string `json:"position" validate:"max=8"`
}

// Get returns both rosters.
func (s *RosterService) Get(ctx context.Context) (*football.Roster, error) {
	return s.store.Get(ctx)
}

// edit loads the roster, applies fn and saves the result.
func (s *RosterService) edit(ctx context.Context, fn func(r *football.Roster) error) (*football.Roster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(r); err != nil {
		if errors.Is(err, football.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if err := s.store.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// AddPlayer appends a player to side's roster.
func (s *RosterService) AddPlayer(ctx context.Context, side football.Side, in PlayerInput) (football.Player, error) {
	if !side.Valid() {
		return football.Player{}, invalid("side", "must be home or away")
	}
	if err := validateStruct(in); err != nil {
		return football.Player{}, err
	}
	var added football.Player
	_, err := s.edit(ctx, func(r *football.Roster) error {
		added = r.Add(side, in.Number, in.Name, in.Position)
		return nil
	})
	if err != nil {
		return football.Player{}, err
	}
	log.Info().Str("side", string(side)).Str("number", added.Number).Str("name", added.Name).Msg("Player added")
	return added, nil
}

// RemovePlayer deletes a player, clearing the kicker assignment if it was them.
func (s *RosterService) RemovePlayer(ctx context.Context, side football.Side, id string) error {
	if !side.Valid() {
		return invalid("side", "must be home or away")
	}
	_, err := s.edit(ctx, func(r *football.Roster) error {
		return r.Remove(side, id)
	})
	return err
}

// AssignKicker sets side's kicker. An empty id clears it.
func (s *RosterService) AssignKicker(ctx context.Context, side football.Side, id string) (*football.Roster, error) {
	if !side.Valid() {
		return nil, invalid("side", "must be home or away")
	}
	return s.edit(ctx, func(r *football.Roster) error {
		return r.AssignKicker(side, id)
	})
}

// Import appends players read from Number,Name,Position text. Malformed
// lines are skipped. It returns how many players were added.
func (s *RosterService) Import(ctx context.Context, side football.Side, src io.Reader) (int, error) {
	if !side.Valid() {
		return 0, invalid("side", "must be home or away")
	}
	players, err := football.ImportCSV(src)
	if err != nil {
		return 0, invalid("file", "%v", err)
	}
	if _, err := s.edit(ctx, func(r *football.Roster) error {
		r.Import(side, players)
		return nil
	}); err != nil {
		return 0, err
	}
	log.Info().Str("side", string(side)).Int("players", len(players)).Msg("Roster imported")
	return len(players), nil
}

// Export writes side's roster as Number,Name,Position text.
func (s *RosterService) Export(ctx context.Context, side football.Side, w io.Writer) error {
	if !side.Valid() {
		return invalid("side", "must be home or away")
	}
	r, err := s.store.Get(ctx)
	if err != nil {
		return err
	}
	return football.ExportCSV(w, r.Players(side))
}

// Lookup finds players wearing number on either team.
func (s *RosterService) Lookup(ctx context.Context, number string) ([]football.PlayerMatch, error) {
	r, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	return r.Lookup(number), nil
}
