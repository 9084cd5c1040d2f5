package football

import (
	"fmt"
	"strconv"
)

// Formatter renders play descriptions. It is the only producer of the text
// that the stats parser reads back, so the two must stay in step.
type Formatter struct {
	Teams  Teams
	Roster *Roster
}

// NewFormatter returns a Formatter. A nil roster resolves every number to "#<n>".
func NewFormatter(teams Teams, roster *Roster) Formatter {
	if roster == nil {
		roster = NewRoster()
	}
	return Formatter{Teams: teams, Roster: roster}
}

func signedYards(yards int) string {
	if yards > 0 {
		return "+" + strconv.Itoa(yards)
	}
	return strconv.Itoa(yards)
}

func prefix(name string) string {
	if name == "" {
		return ""
	}
	return name + " "
}

// Rush renders "Name +7 yard rush - FIRST DOWN".
func (f Formatter) Rush(possession Side, runner string, yards int, outcome Outcome) string {
	name := f.Roster.PlayerName(possession, runner)
	return prefix(name) + signedYards(yards) + " yard rush" + outcome.Suffix()
}

// CompletePass renders "QB +12 yard pass to WR (complete)" plus the outcome suffix.
func (f Formatter) CompletePass(possession Side, thrower, receiver string, yards int, outcome Outcome) string {
	qb := f.Roster.PlayerName(possession, thrower)
	wr := f.Roster.PlayerName(possession, receiver)
	s := prefix(qb) + signedYards(yards) + " yard pass"
	if wr != "" {
		s += " to " + wr
	}
	return s + " (complete)" + outcome.Suffix()
}

// IncompletePass renders "QB incomplete pass intended for WR".
func (f Formatter) IncompletePass(possession Side, thrower, receiver string) string {
	qb := f.Roster.PlayerName(possession, thrower)
	wr := f.Roster.PlayerName(possession, receiver)
	s := prefix(qb) + "incomplete pass"
	if wr != "" {
		s += " intended for " + wr
	}
	return s
}

// Kick renders "Kickoff by Name #3 to Eagles 25". Without an assigned
// kicker the kicking team's name is used.
func (f Formatter) Kick(kicking Side, k Kick) string {
	label := "Kickoff"
	if k.Type == Punt {
		label = "Punt"
	}
	by := f.kickerName(kicking)
	if by == "" {
		by = f.Teams.Name(kicking)
	}
	return fmt.Sprintf("%s by %s to %s %d", label, by, f.Teams.Name(k.FieldSide), k.LandingYardLine)
}

// kickerName is "Name #3" for the side's assigned kicker, or empty.
func (f Formatter) kickerName(side Side) string {
	if p, ok := f.Roster.Kicker(side); ok {
		return fmt.Sprintf("%s #%s", p.Name, p.Number)
	}
	return ""
}

func (f Formatter) kickerPrefix(side Side) string {
	return prefix(f.kickerName(side))
}

// FieldGoal renders "37 Yard Field Goal - Name #3 : Team", with MISSED after
// "Field Goal" when missed.
func (f Formatter) FieldGoal(side Side, distance int, made bool) string {
	result := ""
	if !made {
		result = " MISSED"
	}
	return fmt.Sprintf("%d Yard Field Goal%s - %s: %s", distance, result, f.kickerPrefix(side), f.Teams.Name(side))
}

// ExtraPoint renders "Extra Point - Name #3 : Team".
func (f Formatter) ExtraPoint(side Side) string {
	return fmt.Sprintf("Extra Point - %s: %s", f.kickerPrefix(side), f.Teams.Name(side))
}

// Score renders the log line for a scoring action. Field goal text needs the
// kick distance.
func (f Formatter) Score(side Side, kind ScoreKind, fgDistance int) string {
	team := f.Teams.Name(side)
	switch kind {
	case ScoreFieldGoal:
		return f.FieldGoal(side, fgDistance, true)
	case ScoreMissedFieldGoal:
		return f.FieldGoal(side, fgDistance, false)
	case ScoreExtraPoint:
		return f.ExtraPoint(side)
	case ScoreSafety:
		return "SAFETY - " + team
	case ScoreTwoPoint:
		return "2-POINT CONVERSION - " + team
	}
	return "TOUCHDOWN - " + team
}

// Timeout renders "Timeout - Team".
func (f Formatter) Timeout(side Side) string {
	return "Timeout - " + f.Teams.Name(side)
}

// EndOfQuarter renders "End of Quarter N" for the quarter that just ended.
func (f Formatter) EndOfQuarter(quarter int) string {
	return "End of Quarter " + strconv.Itoa(quarter)
}

// TurnoverOnDowns renders the manual turnover line for the new possessor.
func (f Formatter) TurnoverOnDowns(newPossession Side) string {
	return "Turnover on downs - " + f.Teams.Name(newPossession) + " takes possession"
}

// FirstDown renders the manual first down line.
func (f Formatter) FirstDown(possession Side) string {
	return "FIRST DOWN - " + f.Teams.Name(possession)
}
