// Package football implements the live scorekeeping rules: field position,
// the play outcome engine, play text formatting, rosters and the player
// statistics read-model rebuilt from the play log.
package football

import "fmt"

// Side identifies one of the two teams.
type Side string

const (
	Home Side = "home"
	Away Side = "away"
)

// Game defaults and fixed design constants.
const (
	DefaultYardLine   = 50
	DefaultDistance   = 10
	QuarterSeconds    = 15 * 60
	MaxTimeouts       = 3
	FinalQuarter      = 4
	TouchdownSpot     = 25
	SafetySpot        = 20
	FieldGoalOffset   = 17
	MinPlayableYard   = 1
	MaxPlayableYard   = 99
	MidfieldYardLine  = 50
	GoalLineYardLine  = 100
	OwnGoalYardLine   = 0
	DefaultHomeName   = "Home Team"
	DefaultAwayName   = "Away Team"
	DefaultPossession = Home
)

// Flip returns the other side.
func (s Side) Flip() Side {
	if s == Home {
		return Away
	}
	return Home
}

// Valid reports whether s is home or away.
func (s Side) Valid() bool {
	return s == Home || s == Away
}

// ParseSide converts "home"/"away" into a Side.
func ParseSide(v string) (Side, error) {
	s := Side(v)
	if !s.Valid() {
		return "", fmt.Errorf("invalid side %q", v)
	}
	return s, nil
}

// Timeouts holds the remaining timeouts per team.
type Timeouts struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// For returns the count for one side.
func (t Timeouts) For(side Side) int {
	if side == Home {
		return t.Home
	}
	return t.Away
}

func (t Timeouts) with(side Side, n int) Timeouts {
	if side == Home {
		t.Home = n
	} else {
		t.Away = n
	}
	return t
}

// Situation is the authoritative live state of a game.
type Situation struct {
	Possession   Side     `json:"possession"`
	Down         int      `json:"down"`
	Distance     int      `json:"distance"`
	YardLine     int      `json:"yardLine"`
	HomeScore    int      `json:"homeScore"`
	AwayScore    int      `json:"awayScore"`
	Quarter      int      `json:"quarter"`
	TimeLeft     int      `json:"timeLeftSeconds"`
	ClockRunning bool     `json:"isClockRunning"`
	Timeouts     Timeouts `json:"timeouts"`
}

// NewSituation returns the state of a freshly created game.
func NewSituation() Situation {
	return Situation{
		Possession: DefaultPossession,
		Down:       1,
		Distance:   DefaultDistance,
		YardLine:   DefaultYardLine,
		Quarter:    1,
		TimeLeft:   QuarterSeconds,
		Timeouts:   Timeouts{Home: MaxTimeouts, Away: MaxTimeouts},
	}
}

// Score returns the points for one side.
func (s Situation) Score(side Side) int {
	if side == Home {
		return s.HomeScore
	}
	return s.AwayScore
}

func (s Situation) withScore(side Side, points int) Situation {
	if side == Home {
		s.HomeScore = points
	} else {
		s.AwayScore = points
	}
	return s
}

// Teams holds the display names of both teams.
type Teams struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// Name returns the display name for a side.
func (t Teams) Name(side Side) string {
	if side == Home {
		return t.Home
	}
	return t.Away
}

// SideOf resolves a recorded team display name back to a side. Anything that
// is not the home name counts as away.
func (t Teams) SideOf(name string) Side {
	if name == t.Home {
		return Home
	}
	return Away
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
