package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/poller"
)

func TestRenderBoard(t *testing.T) {
	sb := &poller.Scoreboard{
		Game: model.Game{
			HomeTeam: "Eagles", AwayTeam: "Hawks",
			HomeScore: 7, AwayScore: 3,
			Quarter: 2, TimeLeft: 431, IsClockRunning: true,
			Down: 3, Distance: 4, YardLine: 62, Possession: "home",
			HomeTimeouts: 2, AwayTimeouts: 3,
		},
	}
	for i := 0; i < 7; i++ {
		sb.Plays = append(sb.Plays, model.Play{Quarter: 2, GameTime: 431, Text: "play " + string(rune('a'+i))})
	}

	var buf bytes.Buffer
	render(&buf, sb)
	out := buf.String()

	assert.Contains(t, out, "Eagles             7 *")
	assert.Contains(t, out, "Q2  7:11 running  TO 2-3")
	assert.Contains(t, out, "3rd & 4 at Hawks 38")
	assert.Contains(t, out, "play e")
	assert.NotContains(t, out, "play f")
	assert.Equal(t, 1, strings.Count(out, " *"))
}

func TestOrdinal(t *testing.T) {
	assert.Equal(t, "1st", ordinal(1))
	assert.Equal(t, "2nd", ordinal(2))
	assert.Equal(t, "4th", ordinal(4))
}
