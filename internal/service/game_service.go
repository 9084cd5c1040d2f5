package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/freeeve/sideline/api/internal/football"
	"github.com/freeeve/sideline/api/internal/logger"
	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/repository"
)

// GameService drives the active game: it runs operator commands through the
// football engine, persists the changed fields, and appends play records.
type GameService struct {
	games       repository.GameRepository
	plays       repository.PlayRepository
	rosters     repository.RosterRepository
	cache       repository.GameCache
	broadcaster Broadcaster
	log         zerolog.Logger

	// cmdMu serializes read-modify-write commands issued through this
	// process. Writers elsewhere still race, last write wins.
	cmdMu sync.Mutex
}

// NewGameService creates a GameService. cache may be nil.
func NewGameService(games repository.GameRepository, plays repository.PlayRepository, rosters repository.RosterRepository, cache repository.GameCache, broadcaster Broadcaster) *GameService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &GameService{
		games:       games,
		plays:       plays,
		rosters:     rosters,
		cache:       cache,
		broadcaster: broadcaster,
		log:         logger.Component("game"),
	}
}

// CommandResult is what a controller command produced.
type CommandResult struct {
	Game    *model.Game      `json:"game"`
	Play    *model.Play      `json:"play,omitempty"`
	Outcome football.Outcome `json:"outcome,omitempty"`
	// Changed is false when the command was a saturated no-op.
	Changed bool `json:"changed"`
	// Warning is set when the situation was saved but its play record was not.
	Warning string `json:"warning,omitempty"`
}

// YardagePlayInput is a rush or pass. Numbers reference the possessing
// team's roster.
type YardagePlayInput struct {
	Type           football.PlayType `json:"playType" validate:"oneof=rush pass"`
	Yards          int               `json:"yards" validate:"min=-100,max=100"`
	Incomplete     bool              `json:"incomplete"`
	Thrower        string            `json:"thrower"`
	BallCarrier    string            `json:"ballCarrier"`
	FieldDirection football.Side     `json:"fieldDirection" validate:"omitempty,oneof=home away"`
}

// ScoreInput is a scoring action. Distance is the field goal length; when it
// is zero it is derived from the yard line and Direction.
type ScoreInput struct {
	Side      football.Side      `json:"team" validate:"oneof=home away"`
	Kind      football.ScoreKind `json:"kind" validate:"required"`
	Distance  int                `json:"distance" validate:"min=0,max=100"`
	Direction football.Side      `json:"direction" validate:"omitempty,oneof=home away"`
}

// entry is the play record a command wants appended.
type entry struct {
	text string
	team football.Side
}

// command transforms the situation. It may return an entry to log. format
// builds the play formatter on first use, so commands that log nothing never
// read the rosters.
type command func(s football.Situation, format func() football.Formatter) (football.Situation, *entry, football.Outcome, error)

// ActiveGame returns the newest active game, creating the default one if
// none exists. Reads are served from the snapshot cache when warm.
func (s *GameService) ActiveGame(ctx context.Context) (*model.Game, error) {
	if s.cache != nil {
		g, err := s.cache.GetActiveGame(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("Snapshot cache read failed")
		} else if g != nil {
			return g, nil
		}
	}
	g, err := s.loadActive(ctx)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, g)
	return g, nil
}

// GetGame returns any game by id.
func (s *GameService) GetGame(ctx context.Context, id int64) (*model.Game, error) {
	g, err := s.games.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// ListGames returns all games, newest first.
func (s *GameService) ListGames(ctx context.Context) ([]model.Game, error) {
	return s.games.List(ctx)
}

// loadActive reads the active game from the store, bypassing the cache.
func (s *GameService) loadActive(ctx context.Context) (*model.Game, error) {
	g, err := s.games.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if g != nil {
		return g, nil
	}
	g, err = s.games.Create(ctx, model.NewGame())
	if err != nil {
		return nil, fmt.Errorf("create default game: %w", err)
	}
	s.log.Info().Int64("gameId", g.ID).Msg("Created default game")
	return g, nil
}

func (s *GameService) remember(ctx context.Context, g *model.Game) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetActiveGame(ctx, g); err != nil {
		s.log.Warn().Err(err).Msg("Snapshot cache write failed")
	}
}

func (s *GameService) forget(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateActiveGame(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Snapshot cache invalidate failed")
	}
}

// UpdateGame applies a partial key/value update from the operator. Keys may
// use either naming; unknown keys are rejected.
func (s *GameService) UpdateGame(ctx context.Context, id int64, fields map[string]json.RawMessage) (*model.Game, error) {
	u, err := model.ParseGameUpdate(fields)
	if err != nil {
		if errors.Is(err, model.ErrNoFields) || errors.Is(err, model.ErrUnknownField) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, invalid("", "%v", err)
	}
	if err := validateStruct(u); err != nil {
		return nil, err
	}

	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	if err := s.games.Update(ctx, id, u); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	g, err := s.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Status == model.GameActive {
		s.remember(ctx, g)
	}
	s.log.Info().Int64("gameId", id).Int("fields", len(u.Assignments())).Msg("Game updated")
	s.broadcaster.BroadcastGameEvent(g.ID, EventGameUpdated, g)
	return g, nil
}

// ResetGame archives the active game, deleting its plays, and starts a fresh
// default game. It returns the new game's id.
func (s *GameService) ResetGame(ctx context.Context) (int64, error) {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	current, err := s.games.FindActive(ctx)
	if err != nil {
		return 0, err
	}
	if current != nil {
		if err := s.games.Archive(ctx, current.ID); err != nil {
			return 0, err
		}
	}
	s.forget(ctx)

	g, err := s.games.Create(ctx, model.NewGame())
	if err != nil {
		return 0, fmt.Errorf("create game: %w", err)
	}
	s.remember(ctx, g)

	ev := s.log.Info().Int64("gameId", g.ID)
	if current != nil {
		ev = ev.Int64("archivedGameId", current.ID)
	}
	ev.Msg("Game reset")
	s.broadcaster.BroadcastGameEvent(g.ID, EventGameReset, map[string]int64{"gameId": g.ID})
	return g.ID, nil
}

// apply runs cmd against the active game and persists what changed.
func (s *GameService) apply(ctx context.Context, name string, cmd command) (*CommandResult, error) {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	g, err := s.loadActive(ctx)
	if err != nil {
		return nil, err
	}
	before := *g

	var (
		f         *football.Formatter
		rosterErr error
	)
	format := func() football.Formatter {
		if f == nil {
			roster, err := s.rosters.Get(ctx)
			if err != nil {
				rosterErr = err
			}
			nf := football.NewFormatter(g.Teams(), roster)
			f = &nf
		}
		return *f
	}

	next, e, outcome, err := cmd(g.Situation(), format)
	if err != nil {
		return nil, err
	}
	if rosterErr != nil {
		return nil, fmt.Errorf("load rosters: %w", rosterErr)
	}
	after := before
	after.SetSituation(next)

	diff := model.Diff(&before, &after)
	result := &CommandResult{Game: &after, Outcome: outcome, Changed: !diff.Empty()}
	if !diff.Empty() {
		if err := s.games.Update(ctx, g.ID, diff); err != nil {
			s.forget(ctx)
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrGameNotFound
			}
			return nil, err
		}
		s.remember(ctx, &after)
		s.broadcaster.BroadcastGameEvent(g.ID, EventGameUpdated, &after)
	}

	if e != nil {
		p, err := s.plays.Create(ctx, model.NewPlay{
			GameID:     g.ID,
			Text:       e.text,
			Team:       before.Teams().Name(e.team),
			Quarter:    before.Quarter,
			GameTime:   before.TimeLeft,
			Possession: before.Possession,
		})
		if err != nil {
			// The situation is already saved; report it and flag the missing record.
			s.log.Error().Err(err).
				Int64("gameId", g.ID).
				Str("command", name).
				Str("play", e.text).
				Msg("Play record failed after situation saved")
			result.Warning = "play was applied but could not be logged"
		} else {
			result.Play = p
			result.Changed = true
			s.broadcaster.BroadcastGameEvent(g.ID, EventPlayAdded, p)
		}
	}

	if result.Changed {
		level := zerolog.InfoLevel
		if name == "tick" {
			level = zerolog.DebugLevel
		}
		ev := s.log.WithLevel(level).Int64("gameId", g.ID).Str("command", name)
		if outcome != "" {
			ev = ev.Str("outcome", string(outcome))
		}
		if e != nil {
			ev = ev.Str("play", e.text)
		}
		ev.Msg("Command applied")
	}
	return result, nil
}

// RecordYardagePlay runs a rush or pass through the engine and logs it.
func (s *GameService) RecordYardagePlay(ctx context.Context, in YardagePlayInput) (*CommandResult, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Incomplete && in.Type != football.Pass {
		return nil, invalid("incomplete", "only a pass can be incomplete")
	}
	return s.apply(ctx, "yardage", func(st football.Situation, format func() football.Formatter) (football.Situation, *entry, football.Outcome, error) {
		possession := st.Possession
		if in.Incomplete {
			t := football.ApplyIncompletePass(st)
			return t.Next, &entry{text: format().IncompletePass(possession, in.Thrower, in.BallCarrier), team: possession}, t.Outcome, nil
		}
		direction := in.FieldDirection
		if direction == "" {
			direction = possession
		}
		t := football.ApplyYardagePlay(st, in.Yards, direction)
		var text string
		if in.Type == football.Rush {
			text = format().Rush(possession, in.BallCarrier, in.Yards, t.Outcome)
		} else {
			text = format().CompletePass(possession, in.Thrower, in.BallCarrier, in.Yards, t.Outcome)
		}
		return t.Next, &entry{text: text, team: possession}, t.Outcome, nil
	})
}

// RecordKick hands the ball to the receiving team at the landing spot.
func (s *GameService) RecordKick(ctx context.Context, k football.Kick) (*CommandResult, error) {
	if err := football.ValidateKick(k); err != nil {
		return nil, invalid("kick", "%v", err)
	}
	return s.apply(ctx, "kick", func(st football.Situation, format func() football.Formatter) (football.Situation, *entry, football.Outcome, error) {
		kicking := k.ReceivingTeam.Flip()
		t := football.ApplyKick(st, k)
		return t.Next, &entry{text: format().Kick(kicking, k), team: kicking}, t.Outcome, nil
	})
}

// Score adds a scoring action's points and logs it. Possession and field
// position are left for the caller to change.
func (s *GameService) Score(ctx context.Context, in ScoreInput) (*CommandResult, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if !in.Kind.Valid() {
		return nil, invalid("kind", "unknown scoring action %q", in.Kind)
	}
	return s.apply(ctx, "score", func(st football.Situation, format func() football.Formatter) (football.Situation, *entry, football.Outcome, error) {
		distance := in.Distance
		if distance == 0 && (in.Kind == football.ScoreFieldGoal || in.Kind == football.ScoreMissedFieldGoal) {
			direction := in.Direction
			if direction == "" {
				direction = in.Side
			}
			distance = football.FieldGoalDistance(st.YardLine, direction)
		}
		next := football.AddScore(st, in.Side, in.Kind.Points())
		return next, &entry{text: format().Score(in.Side, in.Kind, distance), team: in.Side}, "", nil
	})
}

// AdjustScore nudges a score by one point either way without logging a play.
func (s *GameService) AdjustScore(ctx context.Context, side football.Side, delta int) (*CommandResult, error) {
	if !side.Valid() {
		return nil, invalid("team", "must be home or away")
	}
	if delta != 1 && delta != -1 {
		return nil, invalid("delta", "must be 1 or -1")
	}
	return s.apply(ctx, "adjust_score", func(st football.Situation, _ func() football.Formatter) (football.Situation, *entry, football.Outcome, error) {
		return football.AdjustScore(st, side, delta), nil, "", nil
	})
}

// UseTimeout charges a timeout to side and stops the clock. With none left
// it is a no-op.
func (s *GameService) UseTimeout(ctx context.Context, side football.Side) (*CommandResult, error) {
	if !side.Valid() {
		return nil, invalid("team", "must be home or away")
	}
	return s.apply(ctx, "timeout", func(st football.Situation, format func() football.Formatter) (football.Situation, *entry, football.Outcome, error) {
		next, ok := football.UseTimeout(st, side)
		if !ok {
			return st, nil, "", nil
		}
		return next, &entry{text: format().Timeout(side), team: side}, "", nil
	})
}

// RestoreTimeout gives side a timeout back, up to three.
func (s *GameService) RestoreTimeout(ctx context.Context, side football.Side) (*CommandResult, error) {
	if !side.Valid() {
		return nil, invalid("team", "must be home or away")
	}
	return s.apply(ctx, "restore_timeout", func(st football.Situation, _ func() football.Formatter) (football.Situation, *entry, football.Outcome, error) {
		next, _ := football.RestoreTimeout(st, side)
		return next, nil, "", nil
	})
}

// NextQuarter advances the quarter, resetting the clock and timeouts. In the
// fourth quarter it does nothing.
func (s *GameService) NextQuarter(ctx context.Context) (*CommandResult, error) {
	return s.apply(ctx, "next_quarter", func(st football.Situation, format func() football.Formatter) (football.Situation, *entry, football.Outcome, error) {
		next, ok := football.NextQuarter(st)
		if !ok {
			return st, nil, "", nil
		}
		return next, &entry{text: format().EndOfQuarter(st.Quarter), team: st.Possession}, "", nil
	})
}

// NextDown is the manual down advance. After fourth down possession flips
// and a turnover is logged.
func (s *GameService) NextDown(ctx context.Context) (*CommandResult, error) {
	return s.apply(ctx, "next_down", func(st football.Situation, format func() football.Formatter) (football.Situation, *entry, football.Outcome, error) {
		next, turnover := football.NextDown(st)
		if !turnover {
			return next, nil, football.OutcomeNormal, nil
		}
		return next, &entry{text: format().TurnoverOnDowns(next.Possession), team: st.Possession}, football.OutcomeTurnoverOnDowns, nil
	})
}

// FirstDown is the manual first down.
func (s *GameService) FirstDown(ctx context.Context) (*CommandResult, error) {
	return s.apply(ctx, "first_down", func(st football.Situation, format func() football.Formatter) (football.Situation, *entry, football.Outcome, error) {
		return football.FirstDown(st), &entry{text: format().FirstDown(st.Possession), team: st.Possession}, football.OutcomeFirstDown, nil
	})
}

// ClockInput sets the clock. Either field may be omitted.
type ClockInput struct {
	Seconds *int  `json:"seconds" validate:"omitempty,min=0"`
	Running *bool `json:"running"`
}

// SetClock sets the remaining time and/or starts or stops the clock.
func (s *GameService) SetClock(ctx context.Context, in ClockInput) (*CommandResult, error) {
	if in.Seconds == nil && in.Running == nil {
		return nil, invalid("", "seconds or running is required")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.apply(ctx, "clock", func(st football.Situation, _ func() football.Formatter) (football.Situation, *entry, football.Outcome, error) {
		if in.Seconds != nil {
			st = football.SetClock(st, *in.Seconds)
		}
		if in.Running != nil {
			st.ClockRunning = *in.Running && st.TimeLeft > 0
		}
		return st, nil, "", nil
	})
}

// Tick runs one second off the active game's clock if it is running. It
// reports whether the clock reached zero on this tick.
func (s *GameService) Tick(ctx context.Context) (bool, error) {
	var expired bool
	_, err := s.apply(ctx, "tick", func(st football.Situation, _ func() football.Formatter) (football.Situation, *entry, football.Outcome, error) {
		next, stopped := football.Tick(st)
		expired = stopped
		return next, nil, "", nil
	})
	return expired, err
}
