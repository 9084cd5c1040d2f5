package repository

import (
	"context"

	"github.com/freeeve/sideline/api/internal/football"
	"github.com/freeeve/sideline/api/internal/model"
)

// UserRepository defines user data operations.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// Create returns ErrAlreadyExists when the username is taken.
	Create(ctx context.Context, username, passwordHash, role string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// GameRepository defines scoreboard data operations.
type GameRepository interface {
	// FindActive returns the newest active game, or nil.
	FindActive(ctx context.Context) (*model.Game, error)
	FindByID(ctx context.Context, id int64) (*model.Game, error)
	Create(ctx context.Context, g *model.Game) (*model.Game, error)
	// Update writes only the set fields. It returns ErrNotFound when no row matched.
	Update(ctx context.Context, id int64, u model.GameUpdate) error
	// Archive marks the game completed and deletes its plays.
	Archive(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Game, error)
}

// PlayRepository defines play-by-play data operations.
type PlayRepository interface {
	// ListByGame returns plays newest first.
	ListByGame(ctx context.Context, gameID int64) ([]model.Play, error)
	Create(ctx context.Context, p model.NewPlay) (*model.Play, error)
	// Delete returns ErrNotFound when the play does not exist.
	Delete(ctx context.Context, id int64) error
}

// RosterRepository stores the operator's rosters and kicker assignments.
type RosterRepository interface {
	// Get returns an empty roster when none is stored.
	Get(ctx context.Context) (*football.Roster, error)
	Save(ctx context.Context, r *football.Roster) error
}

// GameCache holds the read snapshot public viewers poll.
type GameCache interface {
	GetActiveGame(ctx context.Context) (*model.Game, error)
	SetActiveGame(ctx context.Context, g *model.Game) error
	InvalidateActiveGame(ctx context.Context) error
}
