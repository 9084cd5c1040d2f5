package model

import (
	"time"

	"github.com/freeeve/sideline/api/internal/football"
)

// Roles a user can hold.
const (
	RoleAdmin       = "admin"
	RoleScorekeeper = "scorekeeper"
)

// Game status values.
const (
	GameActive    = "active"
	GameCompleted = "completed"
)

// User is an operator account. The password hash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user can manage other accounts.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Game is the stored scoreboard row.
type Game struct {
	ID             int64     `json:"id"`
	HomeTeam       string    `json:"home_team"`
	AwayTeam       string    `json:"away_team"`
	HomeScore      int       `json:"home_score"`
	AwayScore      int       `json:"away_score"`
	Quarter        int       `json:"quarter"`
	TimeLeft       int       `json:"time_left"`
	IsClockRunning bool      `json:"is_clock_running"`
	Down           int       `json:"down"`
	Distance       int       `json:"distance"`
	YardLine       int       `json:"yard_line"`
	Possession     string    `json:"possession"`
	HomeTimeouts   int       `json:"home_timeouts"`
	AwayTimeouts   int       `json:"away_timeouts"`
	Status         string    `json:"game_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewGame returns an unsaved game with default teams and situation.
func NewGame() *Game {
	g := &Game{
		HomeTeam: football.DefaultHomeName,
		AwayTeam: football.DefaultAwayName,
		Status:   GameActive,
	}
	g.SetSituation(football.NewSituation())
	return g
}

// Teams returns the display names.
func (g *Game) Teams() football.Teams {
	return football.Teams{Home: g.HomeTeam, Away: g.AwayTeam}
}

// Situation projects the row onto the engine's state.
func (g *Game) Situation() football.Situation {
	possession := football.Side(g.Possession)
	if !possession.Valid() {
		possession = football.DefaultPossession
	}
	return football.Situation{
		Possession:   possession,
		Down:         g.Down,
		Distance:     g.Distance,
		YardLine:     g.YardLine,
		HomeScore:    g.HomeScore,
		AwayScore:    g.AwayScore,
		Quarter:      g.Quarter,
		TimeLeft:     g.TimeLeft,
		ClockRunning: g.IsClockRunning,
		Timeouts:     football.Timeouts{Home: g.HomeTimeouts, Away: g.AwayTimeouts},
	}
}

// SetSituation copies engine state onto the row.
func (g *Game) SetSituation(s football.Situation) {
	g.Possession = string(s.Possession)
	g.Down = s.Down
	g.Distance = s.Distance
	g.YardLine = s.YardLine
	g.HomeScore = s.HomeScore
	g.AwayScore = s.AwayScore
	g.Quarter = s.Quarter
	g.TimeLeft = s.TimeLeft
	g.IsClockRunning = s.ClockRunning
	g.HomeTimeouts = s.Timeouts.Home
	g.AwayTimeouts = s.Timeouts.Away
}

// Play is one immutable play-by-play line.
type Play struct {
	ID         int64     `json:"id"`
	GameID     int64     `json:"game_id"`
	Text       string    `json:"play_text"`
	Team       string    `json:"team"`
	Quarter    int       `json:"quarter"`
	GameTime   int       `json:"game_time"`
	Possession string    `json:"possession"`
	CreatedAt  time.Time `json:"timestamp"`
}

// Logged converts a play into the aggregator's input.
func (p Play) Logged() football.LoggedPlay {
	return football.LoggedPlay{
		Seq:         p.ID,
		Description: p.Text,
		Team:        p.Team,
		Offense:     football.Side(p.Possession),
		Quarter:     p.Quarter,
		GameTime:    p.GameTime,
	}
}

// NewPlay is the input for creating a play.
type NewPlay struct {
	GameID     int64  `json:"game_id" validate:"required"`
	Text       string `json:"play_text" validate:"required"`
	Team       string `json:"team"`
	Quarter    int    `json:"quarter" validate:"min=0,max=4"`
	GameTime   int    `json:"game_time" validate:"min=0"`
	Possession string `json:"possession" validate:"omitempty,oneof=home away"`
}
