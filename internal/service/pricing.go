package service

import (
	"strings"

	"spacelister/internal/model"
)

// Base pricing tiers by location, $/sqft/month.
var pricingTiers = map[string]model.PriceRange{
	"nyc_fidi":    {Min: 2.80, Max: 3.50},
	"nyc_midtown": {Min: 2.80, Max: 3.50},
	"nyc_other":   {Min: 2.20, Max: 2.80},
	"sf_soma":     {Min: 3.00, Max: 3.80},
	"sf_fidi":     {Min: 3.00, Max: 3.80},
	"sf_other":    {Min: 2.40, Max: 3.00},
	"la":          {Min: 2.00, Max: 2.60},
	"default":     {Min: 1.80, Max: 2.40},
}

// premiumFeatures bump the rate by 15% when mentioned in standout features.
var premiumFeatures = []string{"views", "renovated", "natural light", "exposed brick", "city views"}

// GetLocationTier classifies a (city, neighborhood) pair into a pricing tier.
// City keywords are checked first, then the neighborhood refines within the
// city; anything unrecognized lands on the default tier.
func GetLocationTier(city, neighborhood string) string {
	cityLower := strings.ToLower(city)
	neighborhoodLower := strings.ToLower(neighborhood)

	if strings.Contains(cityLower, "new york") || strings.Contains(cityLower, "nyc") {
		if strings.Contains(neighborhoodLower, "financial") || strings.Contains(neighborhoodLower, "fidi") {
			return "nyc_fidi"
		}
		if strings.Contains(neighborhoodLower, "midtown") {
			return "nyc_midtown"
		}
		return "nyc_other"
	}

	if strings.Contains(cityLower, "san francisco") || strings.Contains(cityLower, "sf") {
		if strings.Contains(neighborhoodLower, "soma") || strings.Contains(neighborhoodLower, "financial") {
			return "sf_soma"
		}
		return "sf_other"
	}

	if strings.Contains(cityLower, "los angeles") || strings.Contains(cityLower, "la") {
		return "la"
	}

	return "default"
}

// CalculateSuggestedPrice computes a suggested monthly price for a partial
// listing. It is pure and deterministic. When location, neighborhood or square
// footage is missing it returns an all-zero suggestion rather than an error.
func CalculateSuggestedPrice(listing *model.Listing) model.PriceSuggestion {
	if listing.SquareFeet == 0 || listing.Location == "" || listing.Neighborhood == "" {
		return model.PriceSuggestion{}
	}

	tier := GetLocationTier(listing.Location, listing.Neighborhood)
	tierPricing, ok := pricingTiers[tier]
	if !ok {
		tierPricing = pricingTiers["default"]
	}

	// Start with midpoint of tier
	basePricePerSqft := (tierPricing.Min + tierPricing.Max) / 2

	// Adjust for amenities (5+ amenities adds 10%)
	if len(listing.Amenities) >= 5 {
		basePricePerSqft *= 1.1
	}

	// Adjust for standout features (adds 15%)
	if listing.StandoutFeatures != "" {
		lower := strings.ToLower(listing.StandoutFeatures)
		for _, feature := range premiumFeatures {
			if strings.Contains(lower, feature) {
				basePricePerSqft *= 1.15
				break
			}
		}
	}

	basePrice := basePricePerSqft * float64(listing.SquareFeet)

	return model.PriceSuggestion{
		BasePrice: basePrice,
		SuggestedRange: model.PriceRange{
			Min: basePrice * 0.9,
			Max: basePrice * 1.1,
		},
		PricePerSqft: basePricePerSqft,
	}
}

// DefaultComparables is the static reference set used to contextualize price
// suggestions. Read-only; safe to share across sessions.
var DefaultComparables = []model.ComparableListing{
	{
		ID:               "1",
		Location:         "New York",
		Neighborhood:     "Financial District",
		SquareFeet:       2500,
		MonthlyRate:      7500,
		PricePerSqft:     3.00,
		Amenities:        []string{"High-speed internet", "Kitchen", "Meeting rooms", "Natural light"},
		StandoutFeatures: "River views",
	},
	{
		ID:               "2",
		Location:         "New York",
		Neighborhood:     "Midtown",
		SquareFeet:       4000,
		MonthlyRate:      12000,
		PricePerSqft:     3.00,
		Amenities:        []string{"High-speed internet", "Kitchen", "Meeting rooms", "Reception", "Parking"},
		StandoutFeatures: "Recently renovated",
	},
	{
		ID:               "3",
		Location:         "San Francisco",
		Neighborhood:     "SOMA",
		SquareFeet:       3000,
		MonthlyRate:      10500,
		PricePerSqft:     3.50,
		Amenities:        []string{"High-speed internet", "Kitchen", "Meeting rooms", "Natural light", "24/7 access"},
		StandoutFeatures: "Exposed brick",
	},
	{
		ID:           "4",
		Location:     "Los Angeles",
		Neighborhood: "Downtown",
		SquareFeet:   2000,
		MonthlyRate:  5000,
		PricePerSqft: 2.50,
		Amenities:    []string{"High-speed internet", "Kitchen", "Meeting rooms"},
	},
}

// GetComparables selects up to three comparable listings for a partial
// listing: same city (substring match either direction) and within ±50% of
// the square footage. When fewer than two survive the filter, the head of the
// unfiltered reference set is returned so callers always have something to show.
func GetComparables(listing *model.Listing) []model.ComparableListing {
	if listing.Location == "" || listing.SquareFeet == 0 {
		return head(DefaultComparables, 3)
	}

	locationLower := strings.ToLower(listing.Location)
	var filtered []model.ComparableListing
	for _, comp := range DefaultComparables {
		compLocation := strings.ToLower(comp.Location)
		sameCity := strings.Contains(compLocation, locationLower) ||
			strings.Contains(locationLower, compLocation)
		similarSize := float64(comp.SquareFeet) >= float64(listing.SquareFeet)*0.5 &&
			float64(comp.SquareFeet) <= float64(listing.SquareFeet)*1.5
		if sameCity && similarSize {
			filtered = append(filtered, comp)
		}
	}

	if len(filtered) >= 2 {
		return head(filtered, 3)
	}
	return head(DefaultComparables, 3)
}

func head(comps []model.ComparableListing, n int) []model.ComparableListing {
	if len(comps) <= n {
		return comps
	}
	return comps[:n]
}
