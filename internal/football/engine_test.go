package football

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func situation(down, distance, yardLine int, possession Side) Situation {
	s := NewSituation()
	s.Down = down
	s.Distance = distance
	s.YardLine = yardLine
	s.Possession = possession
	return s
}

func TestNewSituationDefaults(t *testing.T) {
	s := NewSituation()
	assert.Equal(t, Home, s.Possession)
	assert.Equal(t, 1, s.Down)
	assert.Equal(t, 10, s.Distance)
	assert.Equal(t, 50, s.YardLine)
	assert.Equal(t, 1, s.Quarter)
	assert.Equal(t, 900, s.TimeLeft)
	assert.Equal(t, Timeouts{Home: 3, Away: 3}, s.Timeouts)
	assert.Zero(t, s.HomeScore)
	assert.Zero(t, s.AwayScore)
	assert.False(t, s.ClockRunning)
}

func TestYardagePlayFirstDown(t *testing.T) {
	tr := ApplyYardagePlay(situation(3, 5, 40, Home), 7, Home)
	assert.Equal(t, OutcomeFirstDown, tr.Outcome)
	assert.Equal(t, 1, tr.Next.Down)
	assert.Equal(t, 10, tr.Next.Distance)
	assert.Equal(t, 47, tr.Next.YardLine)
	assert.Equal(t, Home, tr.Next.Possession)
}

func TestYardagePlayTouchdown(t *testing.T) {
	tr := ApplyYardagePlay(situation(1, 10, 96, Home), 6, Home)
	assert.Equal(t, OutcomeTouchdown, tr.Outcome)
	assert.Equal(t, 102, tr.Candidate)
	assert.Equal(t, Situation{
		Possession: Away, Down: 1, Distance: 10, YardLine: 25,
		Quarter: 1, TimeLeft: 900, Timeouts: Timeouts{Home: 3, Away: 3},
	}, tr.Next)
}

func TestYardagePlaySafety(t *testing.T) {
	tr := ApplyYardagePlay(situation(2, 10, 3, Home), -5, Home)
	assert.Equal(t, OutcomeSafety, tr.Outcome)
	assert.Equal(t, 20, tr.Next.YardLine)
	assert.Equal(t, Away, tr.Next.Possession)
	assert.Equal(t, 1, tr.Next.Down)
	assert.Equal(t, 10, tr.Next.Distance)
}

func TestYardagePlayTouchdownBeatsFirstDown(t *testing.T) {
	tr := ApplyYardagePlay(situation(1, 10, 85, Home), 20, Home)
	assert.Equal(t, OutcomeTouchdown, tr.Outcome)
}

func TestYardagePlayTurnoverOnDowns(t *testing.T) {
	tr := ApplyYardagePlay(situation(4, 5, 60, Home), 2, Home)
	assert.Equal(t, OutcomeTurnoverOnDowns, tr.Outcome)
	assert.Equal(t, Away, tr.Next.Possession)
	assert.Equal(t, 38, tr.Next.YardLine)
	assert.Equal(t, 1, tr.Next.Down)
	assert.Equal(t, 10, tr.Next.Distance)
}

func TestYardagePlayFourthDownConversion(t *testing.T) {
	tr := ApplyYardagePlay(situation(4, 2, 60, Home), 3, Home)
	assert.Equal(t, OutcomeFirstDown, tr.Outcome)
	assert.Equal(t, Home, tr.Next.Possession)
}

func TestYardagePlayNormalProgression(t *testing.T) {
	tr := ApplyYardagePlay(situation(1, 10, 30, Home), 4, Home)
	assert.Equal(t, OutcomeNormal, tr.Outcome)
	assert.Equal(t, 2, tr.Next.Down)
	assert.Equal(t, 6, tr.Next.Distance)
	assert.Equal(t, 34, tr.Next.YardLine)
}

func TestYardagePlayLossGrowsDistance(t *testing.T) {
	tr := ApplyYardagePlay(situation(2, 6, 30, Home), -3, Home)
	assert.Equal(t, OutcomeNormal, tr.Outcome)
	assert.Equal(t, 9, tr.Next.Distance)
	assert.Equal(t, 27, tr.Next.YardLine)
}

func TestYardagePlayNegativeDistanceIsKept(t *testing.T) {
	// distance already below zero from a prior play; the engine does not floor it
	s := situation(2, -2, 30, Home)
	tr := ApplyYardagePlay(s, -5, Home)
	assert.Equal(t, 3, tr.Next.Distance)

	s = situation(2, 3, 30, Home)
	s.Distance = 3
	tr = ApplyYardagePlay(s, 2, Home)
	assert.Equal(t, 1, tr.Next.Distance)
}

func TestYardagePlayAgainstFieldDirection(t *testing.T) {
	// away has the ball but yards are entered toward the home goal
	tr := ApplyYardagePlay(situation(1, 10, 50, Away), 4, Home)
	assert.Equal(t, OutcomeNormal, tr.Outcome)
	assert.Equal(t, 46, tr.Next.YardLine)
	assert.Equal(t, 6, tr.Next.Distance)
}

func TestYardagePlayFlippedDirectionFirstDownUsesRawYards(t *testing.T) {
	tr := ApplyYardagePlay(situation(1, 10, 50, Away), 12, Home)
	assert.Equal(t, OutcomeFirstDown, tr.Outcome)
	assert.Equal(t, 38, tr.Next.YardLine)
}

func TestYardagePlayYardLineBounds(t *testing.T) {
	for yl := 1; yl <= 99; yl += 7 {
		for yards := -120; yards <= 120; yards += 9 {
			for down := 1; down <= 4; down++ {
				for _, dir := range []Side{Home, Away} {
					tr := ApplyYardagePlay(situation(down, 10, yl, Home), yards, dir)
					switch tr.Outcome {
					case OutcomeTouchdown:
						require.Equal(t, 25, tr.Next.YardLine)
					case OutcomeSafety:
						require.Equal(t, 20, tr.Next.YardLine)
					default:
						require.GreaterOrEqual(t, tr.Next.YardLine, 1)
						require.LessOrEqual(t, tr.Next.YardLine, 99)
					}
					if tr.Outcome == OutcomeTurnoverOnDowns {
						require.Equal(t, clamp(100-tr.Candidate, 1, 99), tr.Next.YardLine)
					}
				}
			}
		}
	}
}

func TestYardagePlayExtremeYardsSaturate(t *testing.T) {
	tr := ApplyYardagePlay(NewSituation(), math.MaxInt, Home)
	assert.Equal(t, OutcomeTouchdown, tr.Outcome)
	assert.Equal(t, Away, tr.Next.Possession)
	assert.Equal(t, 50+MaxPlayYards, tr.Candidate)

	tr = ApplyYardagePlay(NewSituation(), math.MinInt, Home)
	assert.Equal(t, OutcomeSafety, tr.Outcome)
	assert.Equal(t, Away, tr.Next.Possession)

	// Against the field direction a huge gain runs into the possessor's own end zone.
	tr = ApplyYardagePlay(NewSituation(), math.MaxInt, Away)
	assert.Equal(t, OutcomeSafety, tr.Outcome)

	tr = ApplyYardagePlay(situation(1, 10, 99, Home), math.MinInt+1, Away)
	assert.Equal(t, OutcomeTouchdown, tr.Outcome)
	assert.Equal(t, 1, tr.Next.Down)
	assert.Equal(t, 10, tr.Next.Distance)
}

func TestIncompletePass(t *testing.T) {
	tr := ApplyIncompletePass(situation(2, 7, 45, Home))
	assert.Equal(t, OutcomeNormal, tr.Outcome)
	assert.Equal(t, 3, tr.Next.Down)
	assert.Equal(t, 7, tr.Next.Distance)
	assert.Equal(t, 45, tr.Next.YardLine)
	assert.Equal(t, Home, tr.Next.Possession)
}

func TestIncompletePassOnFourthDown(t *testing.T) {
	tr := ApplyIncompletePass(situation(4, 7, 45, Home))
	assert.Equal(t, OutcomeTurnoverOnDowns, tr.Outcome)
	assert.Equal(t, 45, tr.Next.YardLine)
	assert.Equal(t, Away, tr.Next.Possession)
	assert.Equal(t, 1, tr.Next.Down)
	assert.Equal(t, 10, tr.Next.Distance)
}

func TestApplyKick(t *testing.T) {
	s := situation(3, 4, 70, Home)
	tr := ApplyKick(s, Kick{Type: Punt, ReceivingTeam: Away, FieldSide: Away, LandingYardLine: 20})
	assert.Equal(t, OutcomeKickReceived, tr.Outcome)
	assert.Equal(t, Away, tr.Next.Possession)
	assert.Equal(t, 80, tr.Next.YardLine)
	assert.Equal(t, 1, tr.Next.Down)
	assert.Equal(t, 10, tr.Next.Distance)

	tr = ApplyKick(s, Kick{Type: Kickoff, ReceivingTeam: Home, FieldSide: Home, LandingYardLine: 25})
	assert.Equal(t, 25, tr.Next.YardLine)
	assert.Equal(t, Home, tr.Next.Possession)
}

func TestValidateKick(t *testing.T) {
	tests := []struct {
		name    string
		kick    Kick
		wantErr bool
	}{
		{"valid kickoff", Kick{Kickoff, Away, Away, 25}, false},
		{"midfield accepted", Kick{Punt, Away, Home, 50}, false},
		{"one yard line", Kick{Punt, Away, Away, 1}, false},
		{"zero", Kick{Punt, Away, Away, 0}, true},
		{"past midfield", Kick{Punt, Away, Away, 51}, true},
		{"bad type", Kick{Rush, Away, Away, 20}, true},
		{"bad side", Kick{Punt, "north", Away, 20}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKick(tt.kick)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKick)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScoreDoesNotTouchPossession(t *testing.T) {
	s := situation(2, 8, 97, Home)
	next := AddScore(s, Home, ScoreTouchdown.Points())
	assert.Equal(t, 6, next.HomeScore)
	assert.Equal(t, Home, next.Possession)
	assert.Equal(t, 97, next.YardLine)
	assert.Equal(t, 2, next.Down)
}

func TestScorePoints(t *testing.T) {
	assert.Equal(t, 6, ScoreTouchdown.Points())
	assert.Equal(t, 3, ScoreFieldGoal.Points())
	assert.Equal(t, 0, ScoreMissedFieldGoal.Points())
	assert.Equal(t, 1, ScoreExtraPoint.Points())
	assert.Equal(t, 2, ScoreSafety.Points())
	assert.Equal(t, 2, ScoreTwoPoint.Points())
	assert.False(t, ScoreKind("onside").Valid())
}

func TestAdjustScoreFloorsAtZero(t *testing.T) {
	s := NewSituation()
	s = AdjustScore(s, Away, -1)
	assert.Equal(t, 0, s.AwayScore)
	s = AdjustScore(s, Away, 1)
	assert.Equal(t, 1, s.AwayScore)
}

func TestTimeouts(t *testing.T) {
	s := NewSituation()
	s.ClockRunning = true

	s, ok := UseTimeout(s, Home)
	require.True(t, ok)
	assert.Equal(t, 2, s.Timeouts.Home)
	assert.False(t, s.ClockRunning)

	s, _ = UseTimeout(s, Home)
	s, _ = UseTimeout(s, Home)
	s.ClockRunning = true
	s, ok = UseTimeout(s, Home)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Timeouts.Home)
	assert.True(t, s.ClockRunning, "no-op timeout leaves the clock alone")

	s, ok = RestoreTimeout(s, Home)
	assert.True(t, ok)
	assert.Equal(t, 1, s.Timeouts.Home)

	_, ok = RestoreTimeout(NewSituation(), Away)
	assert.False(t, ok)
}

func TestNextQuarterCapsAtFour(t *testing.T) {
	s := NewSituation()
	s.TimeLeft = 12
	s.Timeouts = Timeouts{Home: 0, Away: 1}

	s, ok := NextQuarter(s)
	require.True(t, ok)
	assert.Equal(t, 2, s.Quarter)
	assert.Equal(t, 900, s.TimeLeft)
	assert.Equal(t, Timeouts{Home: 3, Away: 3}, s.Timeouts)

	s, _ = NextQuarter(s)
	s, _ = NextQuarter(s)
	assert.Equal(t, 4, s.Quarter)

	s.TimeLeft = 5
	s, ok = NextQuarter(s)
	assert.False(t, ok)
	assert.Equal(t, 4, s.Quarter)
	assert.Equal(t, 5, s.TimeLeft)
}

func TestNextDownManual(t *testing.T) {
	s := situation(3, 4, 40, Home)
	s, turnover := NextDown(s)
	assert.False(t, turnover)
	assert.Equal(t, 4, s.Down)
	assert.Equal(t, 4, s.Distance)

	s, turnover = NextDown(s)
	assert.True(t, turnover)
	assert.Equal(t, 1, s.Down)
	assert.Equal(t, 10, s.Distance)
	assert.Equal(t, Away, s.Possession)
	assert.Equal(t, 40, s.YardLine)
}

func TestTick(t *testing.T) {
	s := NewSituation()
	s, stopped := Tick(s)
	assert.False(t, stopped)
	assert.Equal(t, 900, s.TimeLeft, "stopped clock does not tick")

	s.ClockRunning = true
	s.TimeLeft = 2
	s, stopped = Tick(s)
	assert.False(t, stopped)
	assert.Equal(t, 1, s.TimeLeft)
	s, stopped = Tick(s)
	assert.True(t, stopped)
	assert.Equal(t, 0, s.TimeLeft)
	assert.False(t, s.ClockRunning)
}

func TestSetClock(t *testing.T) {
	s := NewSituation()
	s.ClockRunning = true
	assert.Equal(t, 0, SetClock(s, -4).TimeLeft)
	assert.False(t, SetClock(s, 0).ClockRunning)
	assert.True(t, SetClock(s, 30).ClockRunning)
}
