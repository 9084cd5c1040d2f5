// Package sqlite is a single-file store for running the scoreboard without
// a Postgres server, e.g. on a laptop at the field.
package sqlite

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/freeeve/sideline/api/internal/model"
)

type userRow struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

func (r userRow) toModel() model.User {
	return model.User{ID: r.ID, Username: r.Username, Role: r.Role, PasswordHash: r.PasswordHash, CreatedAt: r.CreatedAt}
}

type gameRow struct {
	ID             int64 `gorm:"primaryKey;autoIncrement"`
	HomeTeam       string
	AwayTeam       string
	HomeScore      int
	AwayScore      int
	Quarter        int
	TimeLeft       int
	IsClockRunning bool
	Down           int
	Distance       int
	YardLine       int
	Possession     string
	HomeTimeouts   int
	AwayTimeouts   int
	Status         string `gorm:"column:game_status;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (gameRow) TableName() string { return "games" }

func newGameRow(g *model.Game) gameRow {
	return gameRow{
		HomeTeam: g.HomeTeam, AwayTeam: g.AwayTeam,
		HomeScore: g.HomeScore, AwayScore: g.AwayScore,
		Quarter: g.Quarter, TimeLeft: g.TimeLeft, IsClockRunning: g.IsClockRunning,
		Down: g.Down, Distance: g.Distance, YardLine: g.YardLine, Possession: g.Possession,
		HomeTimeouts: g.HomeTimeouts, AwayTimeouts: g.AwayTimeouts,
		Status: g.Status,
	}
}

func (r gameRow) toModel() model.Game {
	return model.Game{
		ID: r.ID, HomeTeam: r.HomeTeam, AwayTeam: r.AwayTeam,
		HomeScore: r.HomeScore, AwayScore: r.AwayScore,
		Quarter: r.Quarter, TimeLeft: r.TimeLeft, IsClockRunning: r.IsClockRunning,
		Down: r.Down, Distance: r.Distance, YardLine: r.YardLine, Possession: r.Possession,
		HomeTimeouts: r.HomeTimeouts, AwayTimeouts: r.AwayTimeouts,
		Status: r.Status, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type playRow struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	GameID     int64  `gorm:"index;not null"`
	Text       string `gorm:"column:play_text;not null"`
	Team       string
	Quarter    int
	GameTime   int
	Possession string
	CreatedAt  time.Time
}

func (playRow) TableName() string { return "plays" }

func (r playRow) toModel() model.Play {
	return model.Play{
		ID: r.ID, GameID: r.GameID, Text: r.Text, Team: r.Team,
		Quarter: r.Quarter, GameTime: r.GameTime, Possession: r.Possession, CreatedAt: r.CreatedAt,
	}
}

// Open opens (creating if needed) the database file at path and migrates it.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	// One connection keeps per-connection pragmas in force and serializes writers.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			return nil, fmt.Errorf("sqlite %s: %w", p, err)
		}
	}
	if err := db.AutoMigrate(&userRow{}, &gameRow{}, &playRow{}); err != nil {
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func uniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
