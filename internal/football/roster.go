package football

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ErrPlayerNotFound is returned when a roster operation references an unknown player.
var ErrPlayerNotFound = errors.New("player not found")

// defensivePositions are matched as case-insensitive substrings.
var defensivePositions = []string{"db", "lb", "dl", "cb", "fs", "ss", "olb", "mlb", "ilb", "de", "dt", "nt"}

// Player is a roster entry. Number is compared as a string.
type Player struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

// IsOffensive reports whether the player counts toward offensive stats.
// Blank and unknown positions count as offense.
func (p Player) IsOffensive() bool {
	pos := strings.ToLower(p.Position)
	if pos == "" {
		return true
	}
	for _, d := range defensivePositions {
		if strings.Contains(pos, d) {
			return false
		}
	}
	return true
}

// PlayerMatch is a lookup hit with its team.
type PlayerMatch struct {
	Player
	Team Side `json:"team"`
}

// Roster holds both teams' players and their kicker assignments.
type Roster struct {
	Home    []Player        `json:"home"`
	Away    []Player        `json:"away"`
	Kickers map[Side]string `json:"kickers"`
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{Home: []Player{}, Away: []Player{}, Kickers: map[Side]string{}}
}

// Players returns one side's players in roster order.
func (r *Roster) Players(side Side) []Player {
	if r == nil {
		return nil
	}
	if side == Home {
		return r.Home
	}
	return r.Away
}

func (r *Roster) set(side Side, players []Player) {
	if side == Home {
		r.Home = players
	} else {
		r.Away = players
	}
}

// Add appends a player and returns it with a fresh id.
func (r *Roster) Add(side Side, number, name, position string) Player {
	p := Player{
		ID:       uuid.NewString(),
		Number:   strings.TrimSpace(number),
		Name:     strings.TrimSpace(name),
		Position: strings.TrimSpace(position),
	}
	r.set(side, append(r.Players(side), p))
	return p
}

// Remove deletes a player and clears the kicker assignment that pointed at it.
func (r *Roster) Remove(side Side, id string) error {
	players := r.Players(side)
	for i, p := range players {
		if p.ID != id {
			continue
		}
		r.set(side, append(players[:i:i], players[i+1:]...))
		if r.Kickers[side] == id {
			delete(r.Kickers, side)
		}
		return nil
	}
	return ErrPlayerNotFound
}

// AssignKicker points a side's kicker at one of its players. An empty id
// clears the assignment.
func (r *Roster) AssignKicker(side Side, id string) error {
	if r.Kickers == nil {
		r.Kickers = map[Side]string{}
	}
	if id == "" {
		delete(r.Kickers, side)
		return nil
	}
	for _, p := range r.Players(side) {
		if p.ID == id {
			r.Kickers[side] = id
			return nil
		}
	}
	return ErrPlayerNotFound
}

// Kicker returns the assigned kicker for a side.
func (r *Roster) Kicker(side Side) (Player, bool) {
	if r == nil {
		return Player{}, false
	}
	id, ok := r.Kickers[side]
	if !ok {
		return Player{}, false
	}
	for _, p := range r.Players(side) {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// FindByNumber returns the first player on a side wearing number.
func (r *Roster) FindByNumber(side Side, number string) (Player, bool) {
	for _, p := range r.Players(side) {
		if p.Number == number {
			return p, true
		}
	}
	return Player{}, false
}

// FindByName returns the first player on a side with exactly this name.
func (r *Roster) FindByName(side Side, name string) (Player, bool) {
	for _, p := range r.Players(side) {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerName resolves a number to a name for play text. An empty number
// yields "", an unknown one "#<number>".
func (r *Roster) PlayerName(side Side, number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	if p, ok := r.FindByNumber(side, number); ok {
		return p.Name
	}
	return "#" + number
}

// Lookup searches both teams for a number.
func (r *Roster) Lookup(number string) []PlayerMatch {
	number = strings.TrimSpace(number)
	if number == "" || r == nil {
		return nil
	}
	var out []PlayerMatch
	for _, side := range []Side{Home, Away} {
		for _, p := range r.Players(side) {
			if p.Number == number {
				out = append(out, PlayerMatch{Player: p, Team: side})
			}
		}
	}
	return out
}

// Offensive returns a side's offensive players in roster order.
func (r *Roster) Offensive(side Side) []Player {
	var out []Player
	for _, p := range r.Players(side) {
		if p.IsOffensive() {
			out = append(out, p)
		}
	}
	return out
}

// ImportCSV reads Number,Name,Position lines. The first line is a header.
// Lines missing a number or name are skipped. Fields are not unescaped.
func ImportCSV(r io.Reader) ([]Player, error) {
	sc := bufio.NewScanner(r)
	var players []Player
	first := true
	for sc.Scan() {
		if first {
			first = false
			continue
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		p := Player{ID: uuid.NewString(), Number: parts[0], Name: parts[1]}
		if len(parts) > 2 {
			p.Position = parts[2]
		}
		players = append(players, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read roster csv: %w", err)
	}
	return players, nil
}

// ExportCSV writes players in the format ImportCSV reads.
func ExportCSV(w io.Writer, players []Player) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("Number,Name,Position\n")
	for _, p := range players {
		fmt.Fprintf(bw, "%s,%s,%s\n", p.Number, p.Name, p.Position)
	}
	return bw.Flush()
}

// Import appends imported players to a side.
func (r *Roster) Import(side Side, players []Player) {
	r.set(side, append(r.Players(side), players...))
}
