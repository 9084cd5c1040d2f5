package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/repository"
)

// GameRepo stores scoreboard rows.
type GameRepo struct {
	db *gorm.DB
}

// NewGameRepo creates a GameRepo.
func NewGameRepo(db *gorm.DB) *GameRepo {
	return &GameRepo{db: db}
}

// FindActive returns the newest active game.
func (r *GameRepo) FindActive(ctx context.Context) (*model.Game, error) {
	var row gameRow
	err := r.db.WithContext(ctx).Where("game_status = ?", model.GameActive).Order("id DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active game: %w", err)
	}
	g := row.toModel()
	return &g, nil
}

// FindByID returns a game by id.
func (r *GameRepo) FindByID(ctx context.Context, id int64) (*model.Game, error) {
	var row gameRow
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find game: %w", err)
	}
	g := row.toModel()
	return &g, nil
}

// Create inserts a game.
func (r *GameRepo) Create(ctx context.Context, in *model.Game) (*model.Game, error) {
	row := newGameRow(in)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	g := row.toModel()
	return &g, nil
}

// Update writes the set fields of u.
func (r *GameRepo) Update(ctx context.Context, id int64, u model.GameUpdate) error {
	assignments := u.Assignments()
	if len(assignments) == 0 {
		return model.ErrNoFields
	}
	values := make(map[string]any, len(assignments)+1)
	for _, a := range assignments {
		values[a.Column] = a.Value
	}
	values["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&gameRow{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return fmt.Errorf("update game: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Archive marks a game completed and deletes its plays.
func (r *GameRepo) Archive(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&gameRow{}).Where("id = ?", id).Updates(map[string]any{
			"game_status":      model.GameCompleted,
			"is_clock_running": false,
			"updated_at":       time.Now(),
		}).Error
		if err != nil {
			return fmt.Errorf("archive game: %w", err)
		}
		if err := tx.Where("game_id = ?", id).Delete(&playRow{}).Error; err != nil {
			return fmt.Errorf("delete plays: %w", err)
		}
		return nil
	})
}

// List returns all games, newest first.
func (r *GameRepo) List(ctx context.Context) ([]model.Game, error) {
	var rows []gameRow
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(100).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	games := make([]model.Game, len(rows))
	for i, row := range rows {
		games[i] = row.toModel()
	}
	return games, nil
}
