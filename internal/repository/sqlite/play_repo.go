package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/repository"
)

// PlayRepo stores play-by-play rows.
type PlayRepo struct {
	db *gorm.DB
}

// NewPlayRepo creates a PlayRepo.
func NewPlayRepo(db *gorm.DB) *PlayRepo {
	return &PlayRepo{db: db}
}

// ListByGame returns a game's plays, newest first.
func (r *PlayRepo) ListByGame(ctx context.Context, gameID int64) ([]model.Play, error) {
	var rows []playRow
	if err := r.db.WithContext(ctx).Where("game_id = ?", gameID).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list plays: %w", err)
	}
	plays := make([]model.Play, len(rows))
	for i, row := range rows {
		plays[i] = row.toModel()
	}
	return plays, nil
}

// Create appends a play.
func (r *PlayRepo) Create(ctx context.Context, in model.NewPlay) (*model.Play, error) {
	row := playRow{
		GameID: in.GameID, Text: in.Text, Team: in.Team,
		Quarter: in.Quarter, GameTime: in.GameTime, Possession: in.Possession,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create play: %w", err)
	}
	p := row.toModel()
	return &p, nil
}

// Delete removes one play.
func (r *PlayRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&playRow{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete play: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
