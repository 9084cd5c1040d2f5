package football

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// EventType is the kind of a parsed player event.
type EventType string

const (
	EventRushing   EventType = "rushing"
	EventPassing   EventType = "passing"
	EventReceiving EventType = "receiving"
	EventTouchdown EventType = "touchdown"
)

// Result tags carried on events.
const (
	ResultTD         = "TD"
	ResultGain       = "gain"
	ResultLoss       = "loss"
	ResultNoGain     = "no gain"
	ResultComplete   = "complete"
	ResultIncomplete = "incomplete"
)

var (
	rushPattern       = regexp.MustCompile(`^(.+?)\s*([+-]?\d+)\s*yard\s+rush`)
	passPattern       = regexp.MustCompile(`^(.+?)\s*([+-]?\d+)\s*yard\s+pass\s+to\s+(.+?)\s*\((complete|incomplete)\)`)
	incompletePattern = regexp.MustCompile(`^(.+?)\s*incomplete\s+pass(?:\s+intended\s+for\s+(.+))?`)
	touchdownPattern  = regexp.MustCompile(`^(.+?)\s*[+-]?(\d+)?\s*yard`)
)

// LoggedPlay is the slice of a play record the aggregator reads. Seq is the
// insertion order (the store id). Offense is the side in possession when the
// play was logged; it may be empty for hand-entered plays.
type LoggedPlay struct {
	Seq         int64
	Description string
	Team        string
	Offense     Side
	Quarter     int
	GameTime    int
}

// PlayEvent is one appearance of a player in a play description.
type PlayEvent struct {
	Type        EventType `json:"type"`
	Yards       int       `json:"yards"`
	Result      string    `json:"result"`
	Touchdown   bool      `json:"touchdown"`
	Complete    bool      `json:"complete,omitempty"`
	Target      string    `json:"target,omitempty"`
	Passer      string    `json:"passer,omitempty"`
	Time        string    `json:"time"`
	PlayIndex   int       `json:"playIndex"`
	Description string    `json:"description"`
}

// Summary is the per-player or per-team stat line.
type Summary struct {
	PassingAttempts    int     `json:"passingAttempts"`
	PassingCompletions int     `json:"passingCompletions"`
	PassingYards       int     `json:"passingYards"`
	CompletionPct      float64 `json:"completionPct"`
	RushingAttempts    int     `json:"rushingAttempts"`
	RushingYards       int     `json:"rushingYards"`
	Receptions         int     `json:"receptions"`
	ReceivingYards     int     `json:"receivingYards"`
	Touchdowns         int     `json:"touchdowns"`
	TotalYards         int     `json:"totalYards"`
}

// CompletionDisplay renders the completion rate as "62.5%" or "0%".
func (s Summary) CompletionDisplay() string {
	if s.PassingAttempts == 0 {
		return "0%"
	}
	return strconv.FormatFloat(s.CompletionPct, 'f', 1, 64) + "%"
}

func (s *Summary) add(o Summary) {
	s.PassingAttempts += o.PassingAttempts
	s.PassingCompletions += o.PassingCompletions
	s.PassingYards += o.PassingYards
	s.RushingAttempts += o.RushingAttempts
	s.RushingYards += o.RushingYards
	s.Receptions += o.Receptions
	s.ReceivingYards += o.ReceivingYards
	s.Touchdowns += o.Touchdowns
	s.finish()
}

func (s *Summary) finish() {
	s.TotalYards = s.PassingYards + s.RushingYards + s.ReceivingYards
	s.CompletionPct = 0
	if s.PassingAttempts > 0 {
		s.CompletionPct = float64(s.PassingCompletions) / float64(s.PassingAttempts) * 100
	}
}

// Summarize folds a player's events into a Summary.
func Summarize(events []PlayEvent) Summary {
	var s Summary
	for _, e := range events {
		switch e.Type {
		case EventPassing:
			s.PassingAttempts++
			if e.Complete {
				s.PassingCompletions++
				s.PassingYards += e.Yards
			}
		case EventRushing:
			s.RushingAttempts++
			s.RushingYards += e.Yards
		case EventReceiving:
			s.Receptions++
			s.ReceivingYards += e.Yards
		}
		if e.Touchdown {
			s.Touchdowns++
		}
	}
	s.finish()
	return s
}

// PlayerStats is one offensive player's events and summary.
type PlayerStats struct {
	Team     Side        `json:"team"`
	Number   string      `json:"number"`
	Name     string      `json:"name"`
	Position string      `json:"position"`
	Events   []PlayEvent `json:"plays"`
	Summary  Summary     `json:"summary"`
}

// Key is the (team, number) identity of the entry.
func (p PlayerStats) Key() string {
	return string(p.Team) + "-" + p.Number
}

// TeamStats groups a side's players, busiest first, with team totals.
type TeamStats struct {
	Team    Side          `json:"team"`
	Name    string        `json:"name"`
	Players []PlayerStats `json:"players"`
	Totals  Summary       `json:"totals"`
}

// Report is the full statistics read-model for a game.
type Report struct {
	Home TeamStats `json:"home"`
	Away TeamStats `json:"away"`
}

// Player finds an entry by (team, number).
func (r Report) Player(side Side, number string) (PlayerStats, bool) {
	ts := r.Home
	if side == Away {
		ts = r.Away
	}
	for _, p := range ts.Players {
		if p.Number == number {
			return p, true
		}
	}
	return PlayerStats{}, false
}

// Aggregate rebuilds player statistics from the play log. The log may be in
// any order; it is replayed by Seq. Unrecognised text contributes nothing.
// Rushes and passes count for the play's Offense. Other touchdowns, and plays
// with no Offense, go to the side whose current name matches Team.
func Aggregate(log []LoggedPlay, teams Teams, roster *Roster) Report {
	entries := map[Side][]*PlayerStats{}
	for _, side := range []Side{Home, Away} {
		for _, p := range roster.Offensive(side) {
			entries[side] = append(entries[side], &PlayerStats{
				Team:     side,
				Number:   p.Number,
				Name:     p.Name,
				Position: p.Position,
				Events:   []PlayEvent{},
			})
		}
	}

	ordered := make([]LoggedPlay, len(log))
	copy(ordered, log)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Seq < ordered[j].Seq })

	for i, play := range ordered {
		for _, ev := range ParseDescription(play.Description) {
			side := play.Offense
			if !side.Valid() || ev.event.Type == EventTouchdown {
				side = teams.SideOf(play.Team)
			}
			ev.event.PlayIndex = i
			ev.event.Time = fmt.Sprintf("Q%d %s", play.Quarter, FormatClock(play.GameTime))
			for _, e := range entries[side] {
				if e.Name == ev.player {
					e.Events = append(e.Events, ev.event)
					break
				}
			}
		}
	}

	return Report{
		Home: buildTeam(Home, teams.Home, entries[Home]),
		Away: buildTeam(Away, teams.Away, entries[Away]),
	}
}

func buildTeam(side Side, name string, entries []*PlayerStats) TeamStats {
	ts := TeamStats{Team: side, Name: name, Players: make([]PlayerStats, 0, len(entries))}
	for _, e := range entries {
		e.Summary = Summarize(e.Events)
		ts.Totals.add(e.Summary)
		ts.Players = append(ts.Players, *e)
	}
	sort.SliceStable(ts.Players, func(i, j int) bool {
		return len(ts.Players[i].Events) > len(ts.Players[j].Events)
	})
	return ts
}

// ParsedEvent is an event attributed to a player name.
type ParsedEvent struct {
	player string
	event  PlayEvent
}

// Player is the name the event is attributed to.
func (p ParsedEvent) Player() string { return p.player }

// Event is the parsed event.
func (p ParsedEvent) Event() PlayEvent { return p.event }

// ParseDescription extracts player events from one play line. Patterns are
// tried rush, pass, bare incomplete, then any touchdown naming a player.
func ParseDescription(desc string) []ParsedEvent {
	if desc == "" {
		return nil
	}
	touchdown := strings.Contains(desc, "TOUCHDOWN")

	if m := rushPattern.FindStringSubmatch(desc); m != nil {
		yards, _ := strconv.Atoi(m[2])
		result := ResultLoss
		switch {
		case touchdown:
			result = ResultTD
		case yards > 0:
			result = ResultGain
		}
		return []ParsedEvent{{
			player: strings.TrimSpace(m[1]),
			event: PlayEvent{
				Type: EventRushing, Yards: yards, Touchdown: touchdown,
				Result: result, Description: desc,
			},
		}}
	}

	if m := passPattern.FindStringSubmatch(desc); m != nil {
		yards, _ := strconv.Atoi(m[2])
		qb := strings.TrimSpace(m[1])
		receiver := strings.TrimSpace(m[3])
		complete := m[4] == "complete"

		passing := PlayEvent{
			Type: EventPassing, Complete: complete, Target: receiver,
			Touchdown: touchdown, Description: desc,
		}
		switch {
		case touchdown:
			passing.Result = ResultTD
		case complete:
			passing.Result = ResultComplete
		default:
			passing.Result = ResultIncomplete
		}
		if complete {
			passing.Yards = yards
		}
		events := []ParsedEvent{{player: qb, event: passing}}
		if complete {
			receiving := PlayEvent{
				Type: EventReceiving, Yards: yards, Passer: qb,
				Touchdown: touchdown, Result: ResultNoGain, Description: desc,
			}
			switch {
			case touchdown:
				receiving.Result = ResultTD
			case yards > 0:
				receiving.Result = ResultGain
			}
			events = append(events, ParsedEvent{player: receiver, event: receiving})
		}
		return events
	}

	if m := incompletePattern.FindStringSubmatch(desc); m != nil {
		target := strings.TrimSpace(m[2])
		if target == "" {
			target = "Unknown"
		}
		return []ParsedEvent{{
			player: strings.TrimSpace(m[1]),
			event: PlayEvent{
				Type: EventPassing, Target: target,
				Result: ResultIncomplete, Description: desc,
			},
		}}
	}

	if touchdown {
		if m := touchdownPattern.FindStringSubmatch(desc); m != nil {
			yards := 0
			if m[2] != "" {
				yards, _ = strconv.Atoi(m[2])
			}
			return []ParsedEvent{{
				player: strings.TrimSpace(m[1]),
				event: PlayEvent{
					Type: EventTouchdown, Yards: yards, Touchdown: true,
					Result: ResultTD, Description: desc,
				},
			}}
		}
	}
	return nil
}
