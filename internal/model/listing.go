package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Listing represents an office sublet listing assembled through the
// conversational interview. Fields are filled progressively, phase by phase;
// a zero value (or nil pointer) means the field has not been collected yet.
type Listing struct {
	// Basic info
	Location     string `json:"location" db:"location"`
	Neighborhood string `json:"neighborhood" db:"neighborhood"`
	SquareFeet   int    `json:"square_feet" db:"square_feet"`
	SpaceType    string `json:"space_type" db:"space_type"`
	DeskCapacity int    `json:"desk_capacity" db:"desk_capacity"`

	// Configuration. Office and room counts use pointers because 0 is a valid
	// answer and must be distinguishable from "not asked yet".
	PrivateOffices   *int      `json:"private_offices,omitempty" db:"private_offices"`
	ConferenceRooms  *int      `json:"conference_rooms,omitempty" db:"conference_rooms"`
	Amenities        JSONArray `json:"amenities,omitempty" db:"amenities"`
	StandoutFeatures string    `json:"standout_features,omitempty" db:"standout_features"`

	// Terms. Restrictions is nil until the host answers the question; an empty
	// string means the host explicitly said there are none.
	AvailableFrom string  `json:"available_from,omitempty" db:"available_from"`
	MinimumTerm   string  `json:"minimum_term,omitempty" db:"minimum_term"`
	Restrictions  *string `json:"restrictions,omitempty" db:"restrictions"`

	// Pricing
	MonthlyRate         int         `json:"monthly_rate,omitempty" db:"monthly_rate"`
	PricePerSqft        float64     `json:"price_per_sqft,omitempty" db:"price_per_sqft"`
	SuggestedPriceRange *PriceRange `json:"suggested_price_range,omitempty" db:"-"`

	// Generated content
	Title       string `json:"title,omitempty" db:"title"`
	Description string `json:"description,omitempty" db:"description"`

	// Metadata
	ConversationHistory MessageList `json:"conversation_history,omitempty" db:"conversation_history"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
	SessionID           string      `json:"session_id" db:"session_id"`
	ListingID           string      `json:"listing_id,omitempty" db:"listing_id"`
}

// PriceRange is a suggested monthly rate bracket.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PriceSuggestion is the pricing engine output for a partial listing.
type PriceSuggestion struct {
	BasePrice      float64    `json:"base_price"`
	SuggestedRange PriceRange `json:"suggested_range"`
	PricePerSqft   float64    `json:"price_per_sqft"`
}

// ComparableListing is a read-only reference listing used to contextualize a
// suggested price. The reference set is static and shared across sessions.
type ComparableListing struct {
	ID               string   `json:"id"`
	Location         string   `json:"location"`
	Neighborhood     string   `json:"neighborhood"`
	SquareFeet       int      `json:"square_feet"`
	MonthlyRate      int      `json:"monthly_rate"`
	PricePerSqft     float64  `json:"price_per_sqft"`
	Amenities        []string `json:"amenities"`
	StandoutFeatures string   `json:"standout_features,omitempty"`
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}

// MessageList represents a JSON-encoded conversation transcript field
type MessageList []Message

// Value implements driver.Valuer interface
func (m MessageList) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner interface
func (m *MessageList) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), m)
	}
	return json.Unmarshal(bytes, m)
}
