package football

import (
	"errors"
	"fmt"
)

// PlayType is the category of a scrimmage or kick play.
type PlayType string

const (
	Rush    PlayType = "rush"
	Pass    PlayType = "pass"
	Kickoff PlayType = "kickoff"
	Punt    PlayType = "punt"
)

// Outcome classifies the result of a transition.
type Outcome string

const (
	OutcomeNormal          Outcome = "normal"
	OutcomeFirstDown       Outcome = "firstDown"
	OutcomeTurnoverOnDowns Outcome = "turnoverOnDowns"
	OutcomeSafety          Outcome = "safety"
	OutcomeTouchdown       Outcome = "touchdown"
	OutcomeKickReceived    Outcome = "kickReceived"
)

// Suffix is the text appended to a rush or complete pass description.
func (o Outcome) Suffix() string {
	switch o {
	case OutcomeFirstDown:
		return " - FIRST DOWN"
	case OutcomeTurnoverOnDowns:
		return " - TURNOVER ON DOWNS"
	case OutcomeSafety:
		return " - SAFETY"
	case OutcomeTouchdown:
		return " - TOUCHDOWN"
	}
	return ""
}

// Transition is the result of running a play through the engine.
type Transition struct {
	Next    Situation `json:"next"`
	Outcome Outcome   `json:"outcome"`
	// Candidate is the unclamped yard line the play would have reached.
	Candidate int `json:"candidateYardLine"`
}

// MaxPlayYards bounds a single play's gain or loss. Anything longer crosses
// a goal line from every spot on the field, so saturating changes no outcome.
const MaxPlayYards = GoalLineYardLine - OwnGoalYardLine

// ApplyYardagePlay runs a rush or completed pass. yards is measured toward
// fieldDirection's goal and flipped when that differs from the possession.
// It saturates at +/-MaxPlayYards.
func ApplyYardagePlay(s Situation, yards int, fieldDirection Side) Transition {
	yards = clamp(yards, -MaxPlayYards, MaxPlayYards)
	adjusted := yards
	if fieldDirection != s.Possession {
		adjusted = -yards
	}
	candidate := s.YardLine + adjusted
	next := s

	switch {
	case candidate >= GoalLineYardLine:
		next = changeOfPossession(s, TouchdownSpot)
		return Transition{Next: next, Outcome: OutcomeTouchdown, Candidate: candidate}
	case candidate <= OwnGoalYardLine:
		next = changeOfPossession(s, SafetySpot)
		return Transition{Next: next, Outcome: OutcomeSafety, Candidate: candidate}
	case yards >= s.Distance:
		next.Down = 1
		next.Distance = DefaultDistance
		next.YardLine = clampPlayable(candidate)
		return Transition{Next: next, Outcome: OutcomeFirstDown, Candidate: candidate}
	case s.Down >= 4:
		next = changeOfPossession(s, clampPlayable(GoalLineYardLine-candidate))
		return Transition{Next: next, Outcome: OutcomeTurnoverOnDowns, Candidate: candidate}
	}

	// Distance may go negative here; display layers clamp it.
	next.Down = s.Down + 1
	next.Distance = s.Distance - yards
	next.YardLine = clampPlayable(candidate)
	return Transition{Next: next, Outcome: OutcomeNormal, Candidate: candidate}
}

// ApplyIncompletePass advances the down without moving the ball. On fourth
// down the ball turns over at the same spot.
func ApplyIncompletePass(s Situation) Transition {
	if s.Down >= 4 {
		return Transition{
			Next:      changeOfPossession(s, s.YardLine),
			Outcome:   OutcomeTurnoverOnDowns,
			Candidate: s.YardLine,
		}
	}
	next := s
	next.Down = s.Down + 1
	return Transition{Next: next, Outcome: OutcomeNormal, Candidate: s.YardLine}
}

func changeOfPossession(s Situation, yardLine int) Situation {
	s.Possession = s.Possession.Flip()
	s.Down = 1
	s.Distance = DefaultDistance
	s.YardLine = yardLine
	return s
}

// ErrInvalidKick is returned by ValidateKick.
var ErrInvalidKick = errors.New("invalid kick")

// Kick describes a kickoff or punt. LandingYardLine is relative to
// FieldSide's own goal line.
type Kick struct {
	Type            PlayType `json:"type"`
	ReceivingTeam   Side     `json:"receivingTeam"`
	FieldSide       Side     `json:"fieldSide"`
	LandingYardLine int      `json:"landingYardLine"`
}

// ValidateKick checks a kick before it reaches the engine. A landing spot of
// 50 is accepted since both sides map to midfield.
func ValidateKick(k Kick) error {
	if k.Type != Kickoff && k.Type != Punt {
		return fmt.Errorf("%w: type %q", ErrInvalidKick, k.Type)
	}
	if !k.ReceivingTeam.Valid() || !k.FieldSide.Valid() {
		return fmt.Errorf("%w: receiving team and field side must be home or away", ErrInvalidKick)
	}
	if k.LandingYardLine < MinPlayableYard || k.LandingYardLine > MidfieldYardLine {
		return fmt.Errorf("%w: landing yard line %d outside 1..50", ErrInvalidKick, k.LandingYardLine)
	}
	return nil
}

// ApplyKick hands the ball to the receiving team at the landing spot.
func ApplyKick(s Situation, k Kick) Transition {
	next := s
	next.Possession = k.ReceivingTeam
	next.Down = 1
	next.Distance = DefaultDistance
	next.YardLine = AbsoluteFieldPosition(k.LandingYardLine, k.FieldSide)
	return Transition{Next: next, Outcome: OutcomeKickReceived, Candidate: next.YardLine}
}

// ScoreKind is a scoring action outside the yardage engine.
type ScoreKind string

const (
	ScoreTouchdown       ScoreKind = "touchdown"
	ScoreFieldGoal       ScoreKind = "fieldGoal"
	ScoreMissedFieldGoal ScoreKind = "missedFieldGoal"
	ScoreExtraPoint      ScoreKind = "extraPoint"
	ScoreSafety          ScoreKind = "safety"
	ScoreTwoPoint        ScoreKind = "twoPoint"
)

// Points awarded for the action.
func (k ScoreKind) Points() int {
	switch k {
	case ScoreTouchdown:
		return 6
	case ScoreFieldGoal:
		return 3
	case ScoreExtraPoint:
		return 1
	case ScoreSafety, ScoreTwoPoint:
		return 2
	}
	return 0
}

// Valid reports whether k is a known scoring action.
func (k ScoreKind) Valid() bool {
	switch k {
	case ScoreTouchdown, ScoreFieldGoal, ScoreMissedFieldGoal, ScoreExtraPoint, ScoreSafety, ScoreTwoPoint:
		return true
	}
	return false
}

// AddScore adds points to a side. Possession and field position are untouched.
func AddScore(s Situation, side Side, points int) Situation {
	return s.withScore(side, s.Score(side)+points)
}

// AdjustScore applies a manual correction, never going below zero.
func AdjustScore(s Situation, side Side, delta int) Situation {
	v := s.Score(side) + delta
	if v < 0 {
		v = 0
	}
	return s.withScore(side, v)
}

// UseTimeout charges a timeout and stops the clock. It is a no-op when the
// side has none left.
func UseTimeout(s Situation, side Side) (Situation, bool) {
	n := s.Timeouts.For(side)
	if n <= 0 {
		return s, false
	}
	s.Timeouts = s.Timeouts.with(side, n-1)
	s.ClockRunning = false
	return s, true
}

// RestoreTimeout gives a timeout back, saturating at MaxTimeouts.
func RestoreTimeout(s Situation, side Side) (Situation, bool) {
	n := s.Timeouts.For(side)
	if n >= MaxTimeouts {
		return s, false
	}
	s.Timeouts = s.Timeouts.with(side, n+1)
	return s, true
}

// NextQuarter advances the quarter, resetting the clock and timeouts. The
// fourth quarter is final: advancing past it is a no-op.
func NextQuarter(s Situation) (Situation, bool) {
	if s.Quarter >= FinalQuarter {
		return s, false
	}
	s.Quarter++
	s.TimeLeft = QuarterSeconds
	s.Timeouts = Timeouts{Home: MaxTimeouts, Away: MaxTimeouts}
	return s, true
}

// NextDown is the manual down advance. After fourth down the ball turns
// over with a fresh series at the same spot.
func NextDown(s Situation) (Situation, bool) {
	if s.Down >= 4 {
		s.Down = 1
		s.Distance = DefaultDistance
		s.Possession = s.Possession.Flip()
		return s, true
	}
	s.Down++
	return s, false
}

// FirstDown is the manual first down.
func FirstDown(s Situation) Situation {
	s.Down = 1
	s.Distance = DefaultDistance
	return s
}

// Tick runs one second off a running clock. It reports true when the clock
// hit zero and stopped on this tick.
func Tick(s Situation) (Situation, bool) {
	if !s.ClockRunning || s.TimeLeft <= 0 {
		return s, false
	}
	s.TimeLeft--
	if s.TimeLeft <= 0 {
		s.TimeLeft = 0
		s.ClockRunning = false
		return s, true
	}
	return s, false
}

// SetClock sets the remaining seconds, clamped to zero.
func SetClock(s Situation, seconds int) Situation {
	if seconds < 0 {
		seconds = 0
	}
	s.TimeLeft = seconds
	if seconds == 0 {
		s.ClockRunning = false
	}
	return s
}
