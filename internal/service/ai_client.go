package service

import (
	"context"

	"spacelister/internal/model"
)

// AIClient is the interface for the external text-generation collaborator.
// It produces the conversational reply shown to the host; any failure is
// recovered by the engine's rule-based fallback and never surfaces to users.
type AIClient interface {
	// GenerateReply produces one short assistant reply for the current turn.
	GenerateReply(ctx context.Context, req ReplyRequest) (string, error)

	// IsEnabled returns whether the client is configured and ready
	IsEnabled() bool
}

// ReplyRequest carries the conversational context for one reply.
type ReplyRequest struct {
	Utterance string
	Phase     model.Phase
	Listing   *model.Listing
	History   []model.Message // most recent turns, oldest first
}

// Ensure OpenAIClient implements AIClient
var _ AIClient = (*OpenAIClient)(nil)
