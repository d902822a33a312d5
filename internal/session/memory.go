package session

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (State, error) {
	if id == "" {
		return State{}, ErrEmptyID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if st, ok := m.states[id]; ok {
		return st, nil
	}
	return NewState(), nil
}

func (m *MemoryStore) Save(_ context.Context, id string, state State) error {
	if id == "" {
		return ErrEmptyID
	}
	m.mu.Lock()
	m.states[id] = state
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fn func(*State)) (State, error) {
	if id == "" {
		return State{}, ErrEmptyID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.states[id]
	if !ok {
		st = NewState()
	}
	fn(&st)
	m.states[id] = st
	return st, nil
}

func (m *MemoryStore) Backend() string { return "memory" }

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
