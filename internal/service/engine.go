package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"spacelister/internal/model"
	"spacelister/internal/store"
	"spacelister/internal/utils"
)

// historyWindow is how many recent messages accompany each collaborator call.
const historyWindow = 8

// ConversationService drives the guided listing interview: it owns phase
// progression, runs field extraction on every utterance, and produces the
// assistant reply, preferring the AI collaborator and falling back to the
// rule-based generator when it is unavailable.
type ConversationService struct {
	store store.SessionStore
	ai    AIClient

	// The extractor performs unguarded read-modify-write on the session
	// state, so concurrent utterances for one session must be serialized.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewConversationService creates a conversation service with an injected
// session store and AI collaborator. The AI client may be nil.
func NewConversationService(sessionStore store.SessionStore, ai AIClient) *ConversationService {
	return &ConversationService{
		store: sessionStore,
		ai:    ai,
		locks: make(map[string]*sync.Mutex),
	}
}

// GenerateSessionID creates a fresh session identifier
func GenerateSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

func (s *ConversationService) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

func (s *ConversationService) loadOrCreate(ctx context.Context, sessionID string) *model.ConversationState {
	state, err := s.store.Load(ctx, sessionID)
	if err == nil {
		return state
	}
	if !errors.Is(err, store.ErrSessionNotFound) {
		log.Printf("Warning: failed to load session %s, starting fresh: %v", sessionID, err)
	}
	return &model.ConversationState{
		Phase:     model.PhaseGreeting,
		SessionID: sessionID,
		Listing: model.Listing{
			SessionID: sessionID,
			CreatedAt: time.Now().UTC(),
		},
	}
}

func (s *ConversationService) save(ctx context.Context, state *model.ConversationState) {
	// A failed save degrades the conversation to unsaved; it never aborts it.
	if err := s.store.Save(ctx, state.SessionID, state); err != nil {
		log.Printf("Warning: failed to save session %s: %v", state.SessionID, err)
	}
}

func appendMessage(state *model.ConversationState, role, content string) {
	state.Messages = append(state.Messages, model.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
}

// Process handles one user utterance for a session: append the message, run
// extraction, advance at most one phase boundary, produce the reply, append
// it, persist. It never fails past its boundary for collaborator errors.
func (s *ConversationService) Process(ctx context.Context, sessionID, utterance string) ([]string, *model.ConversationState, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state := s.loadOrCreate(ctx, sessionID)
	utterance = strings.TrimSpace(utterance)
	appendMessage(state, model.RoleUser, utterance)

	prevPhase := state.Phase
	field, extracted := ExtractFields(&state.Listing, state.Phase, utterance)

	// Preview intent: saving completes the interview. Edit keywords are
	// recognized but never rewind the phase.
	if state.Phase == model.PhasePreview && containsAny(utterance, []string{"save", "done", "yes"}) {
		state.Phase = model.PhaseComplete
	}

	s.checkPhaseTransitions(state)

	replies := s.generateReplies(ctx, state, prevPhase, field, extracted, utterance)
	for _, reply := range replies {
		appendMessage(state, model.RoleAssistant, reply)
	}

	s.save(ctx, state)
	return replies, state, nil
}

// checkPhaseTransitions advances the conversation across at most one phase
// boundary, evaluating only the current phase's completion predicate. Entering
// the pricing phase records the price suggestion; entering the preview phase
// composes the final listing.
func (s *ConversationService) checkPhaseTransitions(state *model.ConversationState) bool {
	l := &state.Listing

	switch state.Phase {
	case model.PhaseGreeting:
		state.Phase = model.PhaseBasics
		return true

	case model.PhaseBasics:
		if l.Location != "" && l.Neighborhood != "" && l.SquareFeet != 0 && l.SpaceType != "" && l.DeskCapacity != 0 {
			state.Phase = model.PhaseConfig
			return true
		}

	case model.PhaseConfig:
		if l.PrivateOffices != nil && l.ConferenceRooms != nil && len(l.Amenities) > 0 && l.StandoutFeatures != "" {
			state.Phase = model.PhaseTerms
			return true
		}

	case model.PhaseTerms:
		if l.AvailableFrom != "" && l.MinimumTerm != "" && l.Restrictions != nil {
			state.Phase = model.PhasePricing
			pricing := CalculateSuggestedPrice(l)
			priceRange := pricing.SuggestedRange
			l.SuggestedPriceRange = &priceRange
			l.PricePerSqft = pricing.PricePerSqft
			return true
		}

	case model.PhasePricing:
		if l.MonthlyRate != 0 {
			state.Phase = model.PhasePreview
			finalizeListing(l)
			return true
		}
	}

	return false
}

// finalizeListing generates the derived content and fills defaults once the
// interview reaches the preview phase.
func finalizeListing(l *model.Listing) {
	l.Title = GenerateListingTitle(l)
	l.Description = GenerateListingDescription(l)

	if l.MonthlyRate == 0 && l.SquareFeet > 0 {
		pricing := CalculateSuggestedPrice(l)
		l.MonthlyRate = int(math.Round(pricing.BasePrice))
		l.PricePerSqft = pricing.PricePerSqft
		priceRange := pricing.SuggestedRange
		l.SuggestedPriceRange = &priceRange
	}

	if l.Amenities == nil {
		l.Amenities = model.JSONArray{}
	}
	if l.AvailableFrom == "" {
		l.AvailableFrom = "immediate"
	}
	if l.MinimumTerm == "" {
		l.MinimumTerm = "month-to-month"
	}
}

// generateReplies tries the AI collaborator and degrades to the rule-based
// generator on any failure. Collaborator errors never reach the caller.
func (s *ConversationService) generateReplies(ctx context.Context, state *model.ConversationState, prevPhase model.Phase, field string, extracted bool, utterance string) []string {
	if s.ai != nil && s.ai.IsEnabled() {
		reply, err := s.ai.GenerateReply(ctx, ReplyRequest{
			Utterance: utterance,
			Phase:     state.Phase,
			Listing:   &state.Listing,
			History:   recentHistory(state.Messages),
		})
		if err == nil && reply != "" {
			return []string{reply}
		}
		log.Printf("AI reply generation failed, falling back to rule-based: %v", err)
	}

	return s.fallbackReplies(state, prevPhase, field, extracted, utterance)
}

// recentHistory returns the last few messages before the one just appended.
func recentHistory(messages []model.Message) []model.Message {
	if len(messages) == 0 {
		return nil
	}
	history := messages[:len(messages)-1]
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	return history
}

// fallbackReplies mirrors the extraction ordering: acknowledge what was just
// parsed, then ask for the first field still unset.
func (s *ConversationService) fallbackReplies(state *model.ConversationState, prevPhase model.Phase, field string, extracted bool, utterance string) []string {
	switch prevPhase {
	case model.PhaseGreeting:
		return []string{"Hey! Let's get your space listed. Where's your office located?"}
	case model.PhaseBasics:
		return s.basicsReplies(state, field, extracted, utterance)
	case model.PhaseConfig:
		return s.configReplies(state, field, extracted, utterance)
	case model.PhaseTerms:
		return s.termsReplies(state, field, extracted, utterance)
	case model.PhasePricing:
		return s.pricingReplies(state, extracted)
	case model.PhasePreview:
		return s.previewReplies(state, utterance)
	default:
		return []string{"Thanks! Your listing is complete."}
	}
}

func (s *ConversationService) basicsReplies(state *model.ConversationState, field string, extracted bool, utterance string) []string {
	l := &state.Listing

	switch field {
	case FieldLocation:
		if !extracted {
			return []string{"Where's your office located?"}
		}
		if city, ok := MatchCity(utterance); ok {
			display := city
			if city == "nyc" {
				display = "NYC"
			}
			return []string{fmt.Sprintf("Nice! Which neighborhood in %s?", display)}
		}
		return []string{fmt.Sprintf("Got it - %s. Which neighborhood?", utterance)}

	case FieldNeighborhood:
		if !extracted {
			return []string{"Which neighborhood?"}
		}
		return []string{"Perfect! How much space are you looking to sublet?"}

	case FieldSquareFeet:
		if !extracted {
			return []string{"Could you tell me the square footage? (e.g., 3000 sqft)"}
		}
		return []string{fmt.Sprintf("Great! %s sq ft. Is this the entire floor, or part of a larger office?", utils.FormatThousands(l.SquareFeet))}

	case FieldSpaceType:
		return []string{fmt.Sprintf("Got it - %s. How many desks can this space accommodate?", l.SpaceType)}

	case FieldDeskCapacity:
		if !extracted {
			return []string{"How many desks can fit in the space? (e.g., 10 desks)"}
		}
		return []string{
			fmt.Sprintf("Perfect! %d desks. Moving on to configuration...", l.DeskCapacity),
			"Let's talk about the layout. How many private offices does the space have? (or type 'skip' if none)",
		}
	}

	return nil
}

var amenityChecklistPrompt = []string{
	"Now let's check off amenities. Which of these does your space have?",
	"(You can select multiple: " + strings.Join(StandardAmenities, ", ") + ")",
	"Or type them separated by commas.",
}

func (s *ConversationService) configReplies(state *model.ConversationState, field string, extracted bool, utterance string) []string {
	l := &state.Listing

	switch field {
	case FieldPrivateOffices:
		if !extracted {
			return []string{"Could you give me a number? (e.g., 3 offices, or type 'skip')"}
		}
		if containsAny(utterance, skipKeywords) {
			return []string{"No problem. How many conference or meeting rooms?"}
		}
		n := *l.PrivateOffices
		return []string{fmt.Sprintf("Great! %d private office%s. How many conference or meeting rooms?", n, utils.PluralSuffix(n))}

	case FieldConferenceRooms:
		if !extracted {
			return []string{"How many meeting rooms? (or type 'skip')"}
		}
		return amenityChecklistPrompt

	case FieldAmenities:
		if !extracted {
			return amenityChecklistPrompt
		}
		return []string{
			fmt.Sprintf("Got it! I've noted: %s", strings.Join(l.Amenities, ", ")),
			"Any other amenities? (You can also use the checklist below)",
		}

	case FieldStandoutFeatures:
		if !extracted {
			return []string{"Any standout features? (e.g., exposed brick, city views, recently renovated, river views)"}
		}
		return []string{
			fmt.Sprintf("Perfect! %q sounds great.", utterance),
			"Now let's talk about availability and terms.",
			"When is the space available? (e.g., 'immediate', 'January 1st', 'next month')",
		}
	}

	return nil
}

func (s *ConversationService) termsReplies(state *model.ConversationState, field string, extracted bool, utterance string) []string {
	l := &state.Listing

	switch field {
	case FieldAvailableFrom:
		return []string{fmt.Sprintf("Got it - available %s. What's the minimum lease term? (e.g., month-to-month, 3 months, 6 months, 12 months)", utterance)}

	case FieldMinimumTerm:
		return []string{"Any restrictions? (e.g., industry types, noise levels, after-hours access) Or type 'none' if no restrictions."}

	case FieldRestrictions:
		// The terms phase is complete; the transition into pricing has
		// already stored the suggestion on the listing.
		replies := []string{"Perfect! Let's talk pricing."}
		if l.SuggestedPriceRange != nil {
			replies = append(replies, fmt.Sprintf(
				"Based on your location and amenities, I suggest a price range of $%s-$%s/month ($%.2f/sqft).",
				utils.FormatThousands(int(math.Round(l.SuggestedPriceRange.Min))),
				utils.FormatThousands(int(math.Round(l.SuggestedPriceRange.Max))),
				l.PricePerSqft,
			))
		}
		replies = append(replies, "Here are some comparable listings in your area:")
		for _, comp := range GetComparables(l) {
			replies = append(replies, fmt.Sprintf("• %s: %s sqft @ $%s/mo ($%.2f/sqft)",
				comp.Neighborhood,
				utils.FormatThousands(comp.SquareFeet),
				utils.FormatThousands(comp.MonthlyRate),
				comp.PricePerSqft,
			))
		}
		replies = append(replies, "What monthly rate would you like to set?")
		return replies
	}

	return nil
}

func (s *ConversationService) pricingReplies(state *model.ConversationState, extracted bool) []string {
	l := &state.Listing

	if !extracted {
		return []string{"Could you provide the monthly rate as a number? (e.g., 9000 or $9,000)"}
	}

	var replies []string
	if l.SuggestedPriceRange != nil && float64(l.MonthlyRate) > l.SuggestedPriceRange.Max*1.2 {
		replies = append(replies, fmt.Sprintf("That's $%.2f/sqft which is above market. Are you sure?", l.PricePerSqft))
	}
	replies = append(replies, "Perfect! Here's your listing preview:")
	return replies
}

func (s *ConversationService) previewReplies(state *model.ConversationState, utterance string) []string {
	if state.Phase == model.PhaseComplete {
		return []string{"Great! Your listing has been saved. You'll receive a shareable URL shortly."}
	}
	if containsAny(utterance, []string{"edit", "change", "back"}) {
		return []string{"Which section would you like to edit? (basics, amenities, terms, pricing)"}
	}
	return nil
}

// SetAmenities sets the amenity list directly, bypassing text extraction.
// Used by the UI checklist.
func (s *ConversationService) SetAmenities(ctx context.Context, sessionID string, amenities []string) (*model.ConversationState, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state := s.loadOrCreate(ctx, sessionID)
	state.Listing.Amenities = model.JSONArray(amenities)
	s.save(ctx, state)
	return state, nil
}

// SetStandoutFeatures sets the standout features text directly, bypassing
// text extraction. Used by the UI text box.
func (s *ConversationService) SetStandoutFeatures(ctx context.Context, sessionID, features string) (*model.ConversationState, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state := s.loadOrCreate(ctx, sessionID)
	state.Listing.StandoutFeatures = features
	s.save(ctx, state)
	return state, nil
}

// GetState returns the stored conversation state for a session
func (s *ConversationService) GetState(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	return s.store.Load(ctx, sessionID)
}

// GetFullListing returns a complete snapshot of the listing, or nil when the
// conversation has not reached the preview phase or required fields are
// missing. Callers must not assume a record exists just because the phase
// looks advanced.
func (s *ConversationService) GetFullListing(ctx context.Context, sessionID string) (*model.Listing, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return FullListing(state), nil
}

// FullListing derives the completed-listing snapshot from a conversation
// state. Pure; returns nil unless the state qualifies.
func FullListing(state *model.ConversationState) *model.Listing {
	if state.Phase != model.PhasePreview && state.Phase != model.PhaseComplete {
		return nil
	}
	l := state.Listing
	if l.Location == "" || l.SquareFeet == 0 || l.MonthlyRate == 0 {
		return nil
	}

	snapshot := l
	if snapshot.Amenities == nil {
		snapshot.Amenities = model.JSONArray{}
	}
	if snapshot.AvailableFrom == "" {
		snapshot.AvailableFrom = "immediate"
	}
	if snapshot.MinimumTerm == "" {
		snapshot.MinimumTerm = "month-to-month"
	}
	snapshot.ConversationHistory = model.MessageList(state.Messages)
	snapshot.SessionID = state.SessionID
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}
	return &snapshot
}
