package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/repository"
)

const gameColumns = `id, home_team, away_team, home_score, away_score, quarter, time_left, is_clock_running,
	down, distance, yard_line, possession, home_timeouts, away_timeouts, game_status, created_at, updated_at`

// GameRepo handles scoreboard rows.
type GameRepo struct {
	db *sql.DB
}

// NewGameRepo creates a GameRepo.
func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(s scanner) (*model.Game, error) {
	var g model.Game
	err := s.Scan(&g.ID, &g.HomeTeam, &g.AwayTeam, &g.HomeScore, &g.AwayScore, &g.Quarter, &g.TimeLeft,
		&g.IsClockRunning, &g.Down, &g.Distance, &g.YardLine, &g.Possession, &g.HomeTimeouts, &g.AwayTimeouts,
		&g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// FindActive returns the newest active game.
func (r *GameRepo) FindActive(ctx context.Context) (*model.Game, error) {
	g, err := scanGame(r.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE game_status = $1 ORDER BY id DESC LIMIT 1`, model.GameActive))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active game: %w", err)
	}
	return g, nil
}

// FindByID returns a game by id.
func (r *GameRepo) FindByID(ctx context.Context, id int64) (*model.Game, error) {
	g, err := scanGame(r.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find game: %w", err)
	}
	return g, nil
}

// Create inserts a game with the given teams and situation.
func (r *GameRepo) Create(ctx context.Context, in *model.Game) (*model.Game, error) {
	g, err := scanGame(r.db.QueryRowContext(ctx,
		`INSERT INTO games (home_team, away_team, home_score, away_score, quarter, time_left, is_clock_running,
		                    down, distance, yard_line, possession, home_timeouts, away_timeouts, game_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING `+gameColumns,
		in.HomeTeam, in.AwayTeam, in.HomeScore, in.AwayScore, in.Quarter, in.TimeLeft, in.IsClockRunning,
		in.Down, in.Distance, in.YardLine, in.Possession, in.HomeTimeouts, in.AwayTimeouts, in.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	return g, nil
}

// Update writes the set fields of u. Concurrent updates are last write wins
// per column.
func (r *GameRepo) Update(ctx context.Context, id int64, u model.GameUpdate) error {
	assignments := u.Assignments()
	if len(assignments) == 0 {
		return model.ErrNoFields
	}
	columns := make([]string, 0, len(assignments)+1)
	args := make([]any, 0, len(assignments)+1)
	for _, a := range assignments {
		columns = append(columns, a.Column)
		args = append(args, a.Value)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE games SET %s, updated_at = now() WHERE id = $%d`,
		setClause(columns, 1), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game rows: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Archive marks a game completed and deletes its plays in one transaction.
func (r *GameRepo) Archive(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET game_status = $1, is_clock_running = FALSE, updated_at = now() WHERE id = $2`,
		model.GameCompleted, id); err != nil {
		return fmt.Errorf("archive game: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM plays WHERE game_id = $1`, id); err != nil {
		return fmt.Errorf("delete plays: %w", err)
	}
	return tx.Commit()
}

// List returns all games, newest first.
func (r *GameRepo) List(ctx context.Context) ([]model.Game, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+gameColumns+` FROM games ORDER BY id DESC LIMIT 100`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}
