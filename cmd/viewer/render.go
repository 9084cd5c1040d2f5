package main

import (
	"fmt"
	"io"

	"github.com/freeeve/sideline/api/internal/football"
	"github.com/freeeve/sideline/api/internal/poller"
)

// recentPlays is how many play-by-play lines the board shows.
const recentPlays = 5

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

func render(w io.Writer, sb *poller.Scoreboard) {
	g := sb.Game
	possession := football.Side(g.Possession)
	ball := func(side football.Side) string {
		if side == possession {
			return " *"
		}
		return ""
	}

	fmt.Fprintf(w, "%-16s %3d%s\n", g.HomeTeam, g.HomeScore, ball(football.Home))
	fmt.Fprintf(w, "%-16s %3d%s\n", g.AwayTeam, g.AwayScore, ball(football.Away))

	clock := football.FormatClock(g.TimeLeft)
	if g.IsClockRunning {
		clock += " running"
	}
	fmt.Fprintf(w, "Q%d  %s  TO %d-%d\n", g.Quarter, clock, g.HomeTimeouts, g.AwayTimeouts)
	fmt.Fprintf(w, "%s & %d at %s\n", ordinal(g.Down), g.Distance,
		football.DisplayYardLine(g.YardLine, possession, g.HomeTeam, g.AwayTeam))

	n := len(sb.Plays)
	if n > recentPlays {
		n = recentPlays
	}
	if n > 0 {
		fmt.Fprintln(w)
	}
	for _, p := range sb.Plays[:n] {
		fmt.Fprintf(w, "Q%d %s  %s\n", p.Quarter, football.FormatClock(p.GameTime), p.Text)
	}
}
