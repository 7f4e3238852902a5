package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"spacelister/internal/model"
)

// MemoryStore is an in-process session store used in tests and when Redis is
// not configured. State is kept JSON-encoded so load/save behaves the same as
// the Redis store, timestamp round-tripping included.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

// Load retrieves the conversation state for a session id
func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	s.mu.RLock()
	data, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	var state model.ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &state, nil
}

// Save stores the conversation state
func (s *MemoryStore) Save(ctx context.Context, sessionID string, state *model.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	s.mu.Lock()
	s.sessions[sessionID] = data
	s.mu.Unlock()
	return nil
}
