package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/repository"
)

// PlayRepo handles play-by-play rows.
type PlayRepo struct {
	db *sql.DB
}

// NewPlayRepo creates a PlayRepo.
func NewPlayRepo(db *sql.DB) *PlayRepo {
	return &PlayRepo{db: db}
}

// ListByGame returns a game's plays, newest first.
func (r *PlayRepo) ListByGame(ctx context.Context, gameID int64) ([]model.Play, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_id, play_text, team, quarter, game_time, possession, created_at
		 FROM plays WHERE game_id = $1 ORDER BY id DESC`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list plays: %w", err)
	}
	defer rows.Close()

	plays := []model.Play{}
	for rows.Next() {
		var p model.Play
		if err := rows.Scan(&p.ID, &p.GameID, &p.Text, &p.Team, &p.Quarter, &p.GameTime, &p.Possession, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan play: %w", err)
		}
		plays = append(plays, p)
	}
	return plays, rows.Err()
}

// Create appends a play.
func (r *PlayRepo) Create(ctx context.Context, in model.NewPlay) (*model.Play, error) {
	var p model.Play
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO plays (game_id, play_text, team, quarter, game_time, possession)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, game_id, play_text, team, quarter, game_time, possession, created_at`,
		in.GameID, in.Text, in.Team, in.Quarter, in.GameTime, in.Possession,
	).Scan(&p.ID, &p.GameID, &p.Text, &p.Team, &p.Quarter, &p.GameTime, &p.Possession, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create play: %w", err)
	}
	return &p, nil
}

// Delete removes one play.
func (r *PlayRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete play: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete play rows: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
