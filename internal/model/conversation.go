package model

import "time"

// Phase is one stage of the fixed six-stage interview sequence.
type Phase string

const (
	PhaseGreeting Phase = "greeting"
	PhaseBasics   Phase = "phase1_basics"
	PhaseConfig   Phase = "phase2_config"
	PhaseTerms    Phase = "phase3_terms"
	PhasePricing  Phase = "phase4_pricing"
	PhasePreview  Phase = "phase5_preview"
	PhaseComplete Phase = "complete"
)

// phaseOrder is the only legal progression; conversations never move backwards
// or skip a stage.
var phaseOrder = []Phase{
	PhaseGreeting,
	PhaseBasics,
	PhaseConfig,
	PhaseTerms,
	PhasePricing,
	PhasePreview,
	PhaseComplete,
}

// Index returns the position of the phase in the interview order, or -1 for an
// unknown phase.
func (p Phase) Index() int {
	for i, phase := range phaseOrder {
		if phase == p {
			return i
		}
	}
	return -1
}

// Next returns the phase that follows p. The terminal phase returns itself.
func (p Phase) Next() Phase {
	i := p.Index()
	if i < 0 || i >= len(phaseOrder)-1 {
		return p
	}
	return phaseOrder[i+1]
}

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn. Messages are immutable once appended and are
// ordered by append order only.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationState is the full state of one interview session. It is owned by
// exactly one session and mutated in place as utterances are processed.
type ConversationState struct {
	Phase     Phase     `json:"phase"`
	Listing   Listing   `json:"listing"`
	Messages  []Message `json:"messages"`
	SessionID string    `json:"session_id"`
}
