package model

// ChatRequest represents one user utterance for a session
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse represents the assistant replies for one processed utterance
type ChatResponse struct {
	SessionID string   `json:"session_id"`
	Replies   []string `json:"replies"`
	Phase     Phase    `json:"phase"`
	Listing   Listing  `json:"listing"`
}

// AmenitiesRequest sets the amenity list directly from the UI checklist
type AmenitiesRequest struct {
	SessionID string   `json:"session_id" binding:"required"`
	Amenities []string `json:"amenities" binding:"required"`
}

// FeaturesRequest sets the standout features directly from the UI text box
type FeaturesRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Features  string `json:"features" binding:"required"`
}

// PriceSuggestResponse carries a price suggestion plus comparable listings
type PriceSuggestResponse struct {
	Suggestion  PriceSuggestion     `json:"suggestion"`
	Comparables []ComparableListing `json:"comparables"`
}

// PublishResponse is returned when a listing is published
type PublishResponse struct {
	Success   bool   `json:"success"`
	ListingID string `json:"listing_id"`
	URL       string `json:"url"`
}
