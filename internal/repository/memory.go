package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/freeeve/sideline/api/internal/football"
)

// MemoryRosterStore keeps rosters in process memory. It is used when no
// Redis is configured; rosters are lost on restart.
type MemoryRosterStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryRosterStore creates an empty store.
func NewMemoryRosterStore() *MemoryRosterStore {
	return &MemoryRosterStore{}
}

// Get returns a copy of the stored roster.
func (m *MemoryRosterStore) Get(_ context.Context) (*football.Roster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := football.NewRoster()
	if m.data == nil {
		return r, nil
	}
	if err := json.Unmarshal(m.data, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Save replaces the stored roster.
func (m *MemoryRosterStore) Save(_ context.Context, r *football.Roster) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}
