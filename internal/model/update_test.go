package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func raw(t *testing.T, m map[string]any) map[string]json.RawMessage {
	t.Helper()
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %s: %v", k, err)
		}
		out[k] = b
	}
	return out
}

func TestParseGameUpdateAcceptsBothNamings(t *testing.T) {
	u, err := ParseGameUpdate(raw(t, map[string]any{
		"homeScore":        7,
		"away_score":       3,
		"is_clock_running": true,
		"possession":       "away",
		"homeTeam":         "Eagles",
	}))
	if err != nil {
		t.Fatalf("ParseGameUpdate: %v", err)
	}
	if u.HomeScore == nil || *u.HomeScore != 7 {
		t.Errorf("expected homeScore 7, got %v", u.HomeScore)
	}
	if u.AwayScore == nil || *u.AwayScore != 3 {
		t.Errorf("expected awayScore 3, got %v", u.AwayScore)
	}
	if u.IsClockRunning == nil || !*u.IsClockRunning {
		t.Error("expected clock running")
	}
	if u.Down != nil {
		t.Error("expected down untouched")
	}

	got := u.Assignments()
	wantCols := []string{"home_team", "home_score", "away_score", "is_clock_running", "possession"}
	if len(got) != len(wantCols) {
		t.Fatalf("expected %d assignments, got %d", len(wantCols), len(got))
	}
	for i, c := range wantCols {
		if got[i].Column != c {
			t.Errorf("assignment %d: expected %s, got %s", i, c, got[i].Column)
		}
	}
}

func TestParseGameUpdateRejectsUnknownKeys(t *testing.T) {
	tests := []map[string]any{
		{"game_status": "completed"},
		{"id": 4},
		{"homeScore": 1, "HomeScore": 2},
		{"created_at": "now"},
	}
	for _, fields := range tests {
		_, err := ParseGameUpdate(raw(t, fields))
		if !errors.Is(err, ErrUnknownField) {
			t.Errorf("%v: expected ErrUnknownField, got %v", fields, err)
		}
	}
}

func TestParseGameUpdateTypeErrors(t *testing.T) {
	_, err := ParseGameUpdate(raw(t, map[string]any{"down": "three"}))
	if err == nil {
		t.Fatal("expected type error")
	}
	_, err = ParseGameUpdate(map[string]json.RawMessage{})
	if !errors.Is(err, ErrNoFields) {
		t.Errorf("expected ErrNoFields, got %v", err)
	}
}

func TestColumnFor(t *testing.T) {
	for key, want := range map[string]string{
		"yardLine":      "yard_line",
		"yard_line":     "yard_line",
		"awayTimeouts":  "away_timeouts",
		"timeLeft":      "time_left",
		"homeTeam":      "home_team",
		"quarter":       "quarter",
		"away_timeouts": "away_timeouts",
	} {
		got, ok := ColumnFor(key)
		if !ok || got != want {
			t.Errorf("ColumnFor(%q) = %q, %v; want %q", key, got, ok, want)
		}
	}
	if _, ok := ColumnFor("status"); ok {
		t.Error("expected status to be rejected")
	}
}

func TestApplyToAndDiff(t *testing.T) {
	before := NewGame()
	after := *before

	u, err := ParseGameUpdate(raw(t, map[string]any{"down": 3, "yard_line": 62, "awayTeam": "Hawks"}))
	if err != nil {
		t.Fatalf("ParseGameUpdate: %v", err)
	}
	u.ApplyTo(&after)
	if after.Down != 3 || after.YardLine != 62 || after.AwayTeam != "Hawks" {
		t.Fatalf("unexpected game after apply: %+v", after)
	}

	d := Diff(before, &after)
	cols := d.Assignments()
	if len(cols) != 2 || cols[0].Column != "down" || cols[1].Column != "yard_line" {
		t.Errorf("expected down and yard_line in diff, got %+v", cols)
	}
	if Diff(before, before).Empty() != true {
		t.Error("expected empty diff for identical games")
	}
}

func TestGameSituationRoundTrip(t *testing.T) {
	g := NewGame()
	s := g.Situation()
	if s.YardLine != 50 || s.Down != 1 || s.Distance != 10 || s.Timeouts.Home != 3 || s.TimeLeft != 900 {
		t.Fatalf("unexpected default situation: %+v", s)
	}
	s.YardLine = 12
	s.Possession = "away"
	g.SetSituation(s)
	if g.YardLine != 12 || g.Possession != "away" {
		t.Errorf("SetSituation did not copy fields: %+v", g)
	}
	if g.HomeTeam != "Home Team" || g.Status != GameActive {
		t.Errorf("unexpected defaults: %+v", g)
	}
}
