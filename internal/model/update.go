package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownField is returned for update keys outside the allow-list.
var ErrUnknownField = errors.New("unknown field")

// ErrNoFields is returned when an update carries nothing to change.
var ErrNoFields = errors.New("no valid fields to update")

// GameUpdate is a partial scoreboard update. Nil fields are left untouched.
type GameUpdate struct {
	HomeTeam       *string `validate:"omitempty,min=1,max=64"`
	AwayTeam       *string `validate:"omitempty,min=1,max=64"`
	HomeScore      *int    `validate:"omitempty,min=0"`
	AwayScore      *int    `validate:"omitempty,min=0"`
	Quarter        *int    `validate:"omitempty,min=1,max=4"`
	TimeLeft       *int    `validate:"omitempty,min=0"`
	IsClockRunning *bool
	Down           *int    `validate:"omitempty,min=1,max=4"`
	Distance       *int
	YardLine       *int    `validate:"omitempty,min=0,max=100"`
	Possession     *string `validate:"omitempty,oneof=home away"`
	HomeTimeouts   *int    `validate:"omitempty,min=0,max=3"`
	AwayTimeouts   *int    `validate:"omitempty,min=0,max=3"`
}

// gameField maps one updatable field between its in-memory name, its
// column name and the GameUpdate slot that carries it.
type gameField struct {
	name   string
	column string
	decode func(u *GameUpdate, raw json.RawMessage) error
	value  func(u *GameUpdate) (any, bool)
	apply  func(u *GameUpdate, g *Game)
}

func stringField(name, column string, slot func(*GameUpdate) **string, dst func(*Game) *string) gameField {
	return gameField{
		name:   name,
		column: column,
		decode: func(u *GameUpdate, raw json.RawMessage) error {
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("%s: expected string", name)
			}
			*slot(u) = &v
			return nil
		},
		value: func(u *GameUpdate) (any, bool) {
			if p := *slot(u); p != nil {
				return *p, true
			}
			return nil, false
		},
		apply: func(u *GameUpdate, g *Game) {
			if p := *slot(u); p != nil {
				*dst(g) = *p
			}
		},
	}
}

func intField(name, column string, slot func(*GameUpdate) **int, dst func(*Game) *int) gameField {
	return gameField{
		name:   name,
		column: column,
		decode: func(u *GameUpdate, raw json.RawMessage) error {
			var v int
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("%s: expected integer", name)
			}
			*slot(u) = &v
			return nil
		},
		value: func(u *GameUpdate) (any, bool) {
			if p := *slot(u); p != nil {
				return *p, true
			}
			return nil, false
		},
		apply: func(u *GameUpdate, g *Game) {
			if p := *slot(u); p != nil {
				*dst(g) = *p
			}
		},
	}
}

func boolField(name, column string, slot func(*GameUpdate) **bool, dst func(*Game) *bool) gameField {
	return gameField{
		name:   name,
		column: column,
		decode: func(u *GameUpdate, raw json.RawMessage) error {
			var v bool
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("%s: expected boolean", name)
			}
			*slot(u) = &v
			return nil
		},
		value: func(u *GameUpdate) (any, bool) {
			if p := *slot(u); p != nil {
				return *p, true
			}
			return nil, false
		},
		apply: func(u *GameUpdate, g *Game) {
			if p := *slot(u); p != nil {
				*dst(g) = *p
			}
		},
	}
}

// gameFields is the complete allow-list, in column order.
var gameFields = []gameField{
	stringField("homeTeam", "home_team", func(u *GameUpdate) **string { return &u.HomeTeam }, func(g *Game) *string { return &g.HomeTeam }),
	stringField("awayTeam", "away_team", func(u *GameUpdate) **string { return &u.AwayTeam }, func(g *Game) *string { return &g.AwayTeam }),
	intField("homeScore", "home_score", func(u *GameUpdate) **int { return &u.HomeScore }, func(g *Game) *int { return &g.HomeScore }),
	intField("awayScore", "away_score", func(u *GameUpdate) **int { return &u.AwayScore }, func(g *Game) *int { return &g.AwayScore }),
	intField("quarter", "quarter", func(u *GameUpdate) **int { return &u.Quarter }, func(g *Game) *int { return &g.Quarter }),
	intField("timeLeft", "time_left", func(u *GameUpdate) **int { return &u.TimeLeft }, func(g *Game) *int { return &g.TimeLeft }),
	boolField("isClockRunning", "is_clock_running", func(u *GameUpdate) **bool { return &u.IsClockRunning }, func(g *Game) *bool { return &g.IsClockRunning }),
	intField("down", "down", func(u *GameUpdate) **int { return &u.Down }, func(g *Game) *int { return &g.Down }),
	intField("distance", "distance", func(u *GameUpdate) **int { return &u.Distance }, func(g *Game) *int { return &g.Distance }),
	intField("yardLine", "yard_line", func(u *GameUpdate) **int { return &u.YardLine }, func(g *Game) *int { return &g.YardLine }),
	stringField("possession", "possession", func(u *GameUpdate) **string { return &u.Possession }, func(g *Game) *string { return &g.Possession }),
	intField("homeTimeouts", "home_timeouts", func(u *GameUpdate) **int { return &u.HomeTimeouts }, func(g *Game) *int { return &g.HomeTimeouts }),
	intField("awayTimeouts", "away_timeouts", func(u *GameUpdate) **int { return &u.AwayTimeouts }, func(g *Game) *int { return &g.AwayTimeouts }),
}

var fieldsByKey = func() map[string]*gameField {
	m := make(map[string]*gameField, len(gameFields)*2)
	for i := range gameFields {
		f := &gameFields[i]
		m[f.name] = f
		m[f.column] = f
	}
	return m
}()

// ParseGameUpdate decodes a key/value payload. Keys may use the in-memory
// name (homeScore) or the column name (home_score); anything else is rejected.
func ParseGameUpdate(fields map[string]json.RawMessage) (GameUpdate, error) {
	var u GameUpdate
	if len(fields) == 0 {
		return u, ErrNoFields
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f, ok := fieldsByKey[k]
		if !ok {
			return GameUpdate{}, fmt.Errorf("%w: %s", ErrUnknownField, k)
		}
		if err := f.decode(&u, fields[k]); err != nil {
			return GameUpdate{}, err
		}
	}
	return u, nil
}

// Assignment is one column to write.
type Assignment struct {
	Column string
	Value  any
}

// Assignments lists the set fields in column order.
func (u GameUpdate) Assignments() []Assignment {
	var out []Assignment
	for i := range gameFields {
		if v, ok := gameFields[i].value(&u); ok {
			out = append(out, Assignment{Column: gameFields[i].column, Value: v})
		}
	}
	return out
}

// Empty reports whether nothing is set.
func (u GameUpdate) Empty() bool {
	return len(u.Assignments()) == 0
}

// ApplyTo writes the set fields onto g.
func (u GameUpdate) ApplyTo(g *Game) {
	for i := range gameFields {
		gameFields[i].apply(&u, g)
	}
}

// ColumnFor returns the column for an in-memory or column field name.
func ColumnFor(key string) (string, bool) {
	f, ok := fieldsByKey[key]
	if !ok {
		return "", false
	}
	return f.column, true
}

// Diff returns an update that turns before into after, covering only the
// fields the engine can change.
func Diff(before, after *Game) GameUpdate {
	var u GameUpdate
	setInt := func(dst **int, a, b int) {
		if a != b {
			v := b
			*dst = &v
		}
	}
	setInt(&u.HomeScore, before.HomeScore, after.HomeScore)
	setInt(&u.AwayScore, before.AwayScore, after.AwayScore)
	setInt(&u.Quarter, before.Quarter, after.Quarter)
	setInt(&u.TimeLeft, before.TimeLeft, after.TimeLeft)
	setInt(&u.Down, before.Down, after.Down)
	setInt(&u.Distance, before.Distance, after.Distance)
	setInt(&u.YardLine, before.YardLine, after.YardLine)
	setInt(&u.HomeTimeouts, before.HomeTimeouts, after.HomeTimeouts)
	setInt(&u.AwayTimeouts, before.AwayTimeouts, after.AwayTimeouts)
	if before.IsClockRunning != after.IsClockRunning {
		v := after.IsClockRunning
		u.IsClockRunning = &v
	}
	if before.Possession != after.Possession {
		v := after.Possession
		u.Possession = &v
	}
	return u
}
