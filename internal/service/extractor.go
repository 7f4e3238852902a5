package service

import (
	"strings"

	"spacelister/internal/model"
	"spacelister/internal/utils"
)

// Field names, used both for reply templating and for tests.
const (
	FieldLocation         = "location"
	FieldNeighborhood     = "neighborhood"
	FieldSquareFeet       = "square_feet"
	FieldSpaceType        = "space_type"
	FieldDeskCapacity     = "desk_capacity"
	FieldPrivateOffices   = "private_offices"
	FieldConferenceRooms  = "conference_rooms"
	FieldAmenities        = "amenities"
	FieldStandoutFeatures = "standout_features"
	FieldAvailableFrom    = "available_from"
	FieldMinimumTerm      = "minimum_term"
	FieldRestrictions     = "restrictions"
	FieldMonthlyRate      = "monthly_rate"
)

// recognizedCities is the gazetteer used for location extraction. Matching is
// case-insensitive substring; unrecognized locations are still accepted verbatim.
var recognizedCities = []string{
	"new york", "nyc", "san francisco", "sf", "los angeles", "la",
	"chicago", "boston", "seattle",
}

// amenityTable maps utterance keywords to canonical amenity labels. It is the
// single shared table for both extraction and fallback question generation.
// Scan order is fixed so that labels are appended deterministically.
var amenityTable = []struct {
	Keyword string
	Label   string
}{
	{"internet", "High-speed internet"},
	{"wifi", "High-speed internet"},
	{"kitchen", "Kitchen/break room"},
	{"break room", "Kitchen/break room"},
	{"meeting room", "Meeting rooms"},
	{"conference", "Meeting rooms"},
	{"printer", "Printer/office equipment"},
	{"equipment", "Printer/office equipment"},
	{"reception", "Reception area"},
	{"natural light", "Natural light/windows"},
	{"windows", "Natural light/windows"},
	{"parking", "Parking"},
	{"24/7", "24/7 access"},
	{"24 hour", "24/7 access"},
}

// StandardAmenities is the canonical checklist shown by the UI.
var StandardAmenities = []string{
	"High-speed internet",
	"Kitchen/break room",
	"Meeting rooms",
	"Printer/office equipment",
	"Reception area",
	"Natural light/windows",
	"Parking",
	"24/7 access",
}

// featureKeywords marks an utterance as describing a standout feature.
var featureKeywords = []string{
	"exposed brick", "city views", "renovated", "river views", "views",
	"brick", "natural light",
}

// skipKeywords zero out optional count fields instead of leaving them unset.
var skipKeywords = []string{"skip", "none", "n/a"}

// fieldStep couples a field's set-predicate with its extractor. Fields are
// attempted in the fixed per-phase order below; the first unset field consumes
// the utterance whether or not extraction succeeds.
type fieldStep struct {
	name    string
	isSet   func(l *model.Listing) bool
	extract func(l *model.Listing, utterance string) bool
}

var phaseFields = map[model.Phase][]fieldStep{
	model.PhaseBasics: {
		{FieldLocation, func(l *model.Listing) bool { return l.Location != "" }, extractLocation},
		{FieldNeighborhood, func(l *model.Listing) bool { return l.Neighborhood != "" }, extractNeighborhood},
		{FieldSquareFeet, func(l *model.Listing) bool { return l.SquareFeet != 0 }, extractSquareFeet},
		{FieldSpaceType, func(l *model.Listing) bool { return l.SpaceType != "" }, extractSpaceType},
		{FieldDeskCapacity, func(l *model.Listing) bool { return l.DeskCapacity != 0 }, extractDeskCapacity},
	},
	model.PhaseConfig: {
		{FieldPrivateOffices, func(l *model.Listing) bool { return l.PrivateOffices != nil }, extractPrivateOffices},
		{FieldConferenceRooms, func(l *model.Listing) bool { return l.ConferenceRooms != nil }, extractConferenceRooms},
		{FieldAmenities, func(l *model.Listing) bool { return len(l.Amenities) > 0 }, extractAmenities},
		{FieldStandoutFeatures, func(l *model.Listing) bool { return l.StandoutFeatures != "" }, extractStandoutFeatures},
	},
	model.PhaseTerms: {
		{FieldAvailableFrom, func(l *model.Listing) bool { return l.AvailableFrom != "" }, extractAvailableFrom},
		{FieldMinimumTerm, func(l *model.Listing) bool { return l.MinimumTerm != "" }, extractMinimumTerm},
		{FieldRestrictions, func(l *model.Listing) bool { return l.Restrictions != nil }, extractRestrictions},
	},
	model.PhasePricing: {
		{FieldMonthlyRate, func(l *model.Listing) bool { return l.MonthlyRate != 0 }, extractMonthlyRate},
	},
}

// ExtractFields mutates at most the first unset field of the current phase.
// It returns the name of that field and whether the utterance actually set it;
// on a non-match the field stays unset and will be re-asked.
func ExtractFields(l *model.Listing, phase model.Phase, utterance string) (string, bool) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return "", false
	}

	for _, step := range phaseFields[phase] {
		if step.isSet(l) {
			continue
		}
		return step.name, step.extract(l, utterance)
	}
	return "", false
}

// MatchCity returns the first gazetteer city contained in text, if any.
func MatchCity(text string) (string, bool) {
	textLower := strings.ToLower(text)
	for _, city := range recognizedCities {
		if strings.Contains(textLower, city) {
			return city, true
		}
	}
	return "", false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func containsAny(text string, keywords []string) bool {
	textLower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(textLower, kw) {
			return true
		}
	}
	return false
}

func extractLocation(l *model.Listing, utterance string) bool {
	if city, ok := MatchCity(utterance); ok {
		l.Location = city
		return true
	}
	// Accept any location, but not a bare number
	if len(utterance) > 2 && !isAllDigits(utterance) {
		l.Location = utterance
		return true
	}
	return false
}

func extractNeighborhood(l *model.Listing, utterance string) bool {
	if len(utterance) > 2 && !isAllDigits(utterance) {
		l.Neighborhood = utterance
		return true
	}
	return false
}

func extractSquareFeet(l *model.Listing, utterance string) bool {
	sqft, ok := utils.ExtractInteger(utterance)
	if !ok || sqft <= 100 { // reasonable minimum
		return false
	}
	l.SquareFeet = sqft
	return true
}

func extractSpaceType(l *model.Listing, utterance string) bool {
	lower := strings.ToLower(utterance)
	switch {
	case strings.Contains(lower, "entire"), strings.Contains(lower, "whole"), strings.Contains(lower, "full"):
		l.SpaceType = "Entire floor"
	case strings.Contains(lower, "partial"), strings.Contains(lower, "part"):
		l.SpaceType = "Partial floor"
	case strings.Contains(lower, "private"), strings.Contains(lower, "office"):
		l.SpaceType = "Private offices"
	default:
		l.SpaceType = utterance
	}
	return true
}

func extractDeskCapacity(l *model.Listing, utterance string) bool {
	desks, ok := utils.ExtractInteger(utterance)
	if !ok || desks <= 0 || desks >= 1000 {
		return false
	}
	l.DeskCapacity = desks
	return true
}

func extractPrivateOffices(l *model.Listing, utterance string) bool {
	if containsAny(utterance, skipKeywords) {
		zero := 0
		l.PrivateOffices = &zero
		return true
	}
	offices, ok := utils.ExtractInteger(utterance)
	if !ok || offices < 0 || offices >= 100 {
		return false
	}
	l.PrivateOffices = &offices
	return true
}

func extractConferenceRooms(l *model.Listing, utterance string) bool {
	if containsAny(utterance, skipKeywords) {
		zero := 0
		l.ConferenceRooms = &zero
		return true
	}
	rooms, ok := utils.ExtractInteger(utterance)
	if !ok || rooms < 0 || rooms >= 50 {
		return false
	}
	l.ConferenceRooms = &rooms
	return true
}

// ExtractAmenityLabels returns the canonical labels for every amenity keyword
// present in text, in table order, without duplicates.
func ExtractAmenityLabels(text string) []string {
	textLower := strings.ToLower(text)
	var labels []string
	for _, entry := range amenityTable {
		if !strings.Contains(textLower, entry.Keyword) {
			continue
		}
		seen := false
		for _, label := range labels {
			if label == entry.Label {
				seen = true
				break
			}
		}
		if !seen {
			labels = append(labels, entry.Label)
		}
	}
	return labels
}

func extractAmenities(l *model.Listing, utterance string) bool {
	added := false
	for _, label := range ExtractAmenityLabels(utterance) {
		present := false
		for _, existing := range l.Amenities {
			if existing == label {
				present = true
				break
			}
		}
		if !present {
			l.Amenities = append(l.Amenities, label)
			added = true
		}
	}
	return added
}

func extractStandoutFeatures(l *model.Listing, utterance string) bool {
	if containsAny(utterance, featureKeywords) && len(utterance) > 5 {
		l.StandoutFeatures = utterance
		return true
	}
	// Final fallback for the phase: any reasonably descriptive answer counts.
	if len(utterance) > 10 {
		l.StandoutFeatures = utterance
		return true
	}
	return false
}

func extractAvailableFrom(l *model.Listing, utterance string) bool {
	l.AvailableFrom = utterance
	return true
}

func extractMinimumTerm(l *model.Listing, utterance string) bool {
	l.MinimumTerm = utterance
	return true
}

var restrictionNegations = []string{"none", "no restriction"}

func extractRestrictions(l *model.Listing, utterance string) bool {
	if containsAny(utterance, restrictionNegations) {
		// Answered, explicitly no restrictions.
		empty := ""
		l.Restrictions = &empty
		return true
	}
	restrictions := utterance
	l.Restrictions = &restrictions
	return true
}

func extractMonthlyRate(l *model.Listing, utterance string) bool {
	price, ok := utils.ParseCurrency(utterance)
	if !ok || price <= 0 {
		return false
	}
	l.MonthlyRate = price
	if l.SquareFeet > 0 {
		l.PricePerSqft = float64(price) / float64(l.SquareFeet)
	}
	return true
}
