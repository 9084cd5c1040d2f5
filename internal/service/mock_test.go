package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/freeeve/sideline/api/internal/football"
	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/repository"
)

type mockGameRepo struct {
	mu     sync.Mutex
	games  map[int64]*model.Game
	nextID int64
	// writes records every Update in the order it landed.
	writes    []model.GameUpdate
	onArchive func(id int64)
	// beforeFindActive runs ahead of each FindActive, outside the lock.
	beforeFindActive func()
}

func newMockGameRepo() *mockGameRepo {
	return &mockGameRepo{games: make(map[int64]*model.Game)}
}

func (m *mockGameRepo) FindActive(_ context.Context) (*model.Game, error) {
	if m.beforeFindActive != nil {
		m.beforeFindActive()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var newest *model.Game
	for _, g := range m.games {
		if g.Status == model.GameActive && (newest == nil || g.ID > newest.ID) {
			newest = g
		}
	}
	if newest == nil {
		return nil, nil
	}
	cp := *newest
	return &cp, nil
}

func (m *mockGameRepo) FindByID(_ context.Context, id int64) (*model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (m *mockGameRepo) Create(_ context.Context, g *model.Game) (*model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *g
	cp.ID = m.nextID
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.games[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *mockGameRepo) Update(_ context.Context, id int64, u model.GameUpdate) error {
	if u.Empty() {
		return model.ErrNoFields
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ApplyTo(g)
	g.UpdatedAt = time.Now()
	m.writes = append(m.writes, u)
	return nil
}

func (m *mockGameRepo) Archive(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.games[id]; ok {
		g.Status = model.GameCompleted
		g.IsClockRunning = false
	}
	if m.onArchive != nil {
		m.onArchive(id)
	}
	return nil
}

func (m *mockGameRepo) List(_ context.Context) ([]model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Game
	for _, g := range m.games {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type mockPlayRepo struct {
	mu     sync.Mutex
	plays  map[int64]*model.Play
	nextID int64
	games  *mockGameRepo
	// createErr fails every Create when set.
	createErr error
}

func newMockPlayRepo(games *mockGameRepo) *mockPlayRepo {
	return &mockPlayRepo{plays: make(map[int64]*model.Play), games: games}
}

func (m *mockPlayRepo) ListByGame(_ context.Context, gameID int64) ([]model.Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Play{}
	for _, p := range m.plays {
		if p.GameID == gameID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockPlayRepo) Create(_ context.Context, in model.NewPlay) (*model.Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	p := &model.Play{
		ID:         m.nextID,
		GameID:     in.GameID,
		Text:       in.Text,
		Team:       in.Team,
		Quarter:    in.Quarter,
		GameTime:   in.GameTime,
		Possession: in.Possession,
		CreatedAt:  time.Now(),
	}
	m.plays[p.ID] = p
	cp := *p
	return &cp, nil
}

func (m *mockPlayRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plays[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.plays, id)
	return nil
}

func (m *mockPlayRepo) deleteGame(gameID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.plays {
		if p.GameID == gameID {
			delete(m.plays, id)
		}
	}
}

// texts returns the play texts for a game, oldest first.
func (m *mockPlayRepo) texts(gameID int64) []string {
	plays, _ := m.ListByGame(context.Background(), gameID)
	out := make([]string, 0, len(plays))
	for i := len(plays) - 1; i >= 0; i-- {
		out = append(out, plays[i].Text)
	}
	return out
}

type mockUserRepo struct {
	mu     sync.Mutex
	users  map[string]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) Create(_ context.Context, username, hash, role string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[username]; ok {
		return nil, repository.ErrAlreadyExists
	}
	m.nextID++
	u := &model.User{ID: m.nextID, Username: username, PasswordHash: hash, Role: role, CreatedAt: time.Now()}
	m.users[username] = u
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type mockCache struct {
	mu   sync.Mutex
	game *model.Game
	sets int
}

func (m *mockCache) GetActiveGame(_ context.Context) (*model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.game == nil {
		return nil, nil
	}
	cp := *m.game
	return &cp, nil
}

func (m *mockCache) SetActiveGame(_ context.Context, g *model.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *g
	m.game = &cp
	m.sets++
	return nil
}

func (m *mockCache) InvalidateActiveGame(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.game = nil
	return nil
}

type broadcastEvent struct {
	gameID    int64
	eventType string
	data      any
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (b *recordingBroadcaster) BroadcastGameEvent(gameID int64, eventType string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastEvent{gameID: gameID, eventType: eventType, data: data})
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.eventType
	}
	return out
}

// countingRosters counts roster reads.
type countingRosters struct {
	repository.RosterRepository
	gets atomic.Int32
}

func (c *countingRosters) Get(ctx context.Context) (*football.Roster, error) {
	c.gets.Add(1)
	return c.RosterRepository.Get(ctx)
}

// fixture wires a GameService over mocks.
type fixture struct {
	games   *mockGameRepo
	plays   *mockPlayRepo
	rosters *repository.MemoryRosterStore
	cache   *mockCache
	events  *recordingBroadcaster
	svc     *GameService
}

func newFixture() *fixture {
	f := &fixture{
		games:   newMockGameRepo(),
		rosters: repository.NewMemoryRosterStore(),
		cache:   &mockCache{},
		events:  &recordingBroadcaster{},
	}
	f.plays = newMockPlayRepo(f.games)
	f.games.onArchive = f.plays.deleteGame
	f.svc = NewGameService(f.games, f.plays, f.rosters, f.cache, f.events)
	return f
}
