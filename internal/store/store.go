package store

import (
	"context"
	"errors"

	"spacelister/internal/model"
)

// ErrSessionNotFound is returned by Load when no state exists for the id.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists conversation state between utterances. The engine only
// needs load/save semantics; long-term disposal is the store's concern.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*model.ConversationState, error)
	Save(ctx context.Context, sessionID string, state *model.ConversationState) error
}
