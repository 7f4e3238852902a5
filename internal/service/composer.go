package service

import (
	"fmt"
	"strings"

	"spacelister/internal/model"
	"spacelister/internal/utils"
)

// GenerateListingTitle derives a short display title for a listing. With a
// neighborhood and standout features available it leads with the first
// feature; otherwise it falls back to a generic location-based title.
func GenerateListingTitle(listing *model.Listing) string {
	if listing.Neighborhood == "" || listing.StandoutFeatures == "" {
		spaceType := listing.SpaceType
		if spaceType == "" {
			spaceType = "Office"
		}
		place := listing.Neighborhood
		if place == "" {
			place = listing.Location
		}
		if place == "" {
			place = "Downtown"
		}
		return fmt.Sprintf("%s Space in %s", spaceType, place)
	}

	feature := strings.TrimSpace(strings.Split(listing.StandoutFeatures, ",")[0])
	capitalized := feature
	if len(feature) > 0 {
		capitalized = strings.ToUpper(feature[:1]) + feature[1:]
	}

	return fmt.Sprintf("%s %s Office", capitalized, listing.Neighborhood)
}

// GenerateListingDescription builds the prose description from whichever
// parts of the listing are present. Always ends with a period.
func GenerateListingDescription(listing *model.Listing) string {
	var parts []string

	// Location
	if listing.Neighborhood != "" && listing.Location != "" {
		parts = append(parts, fmt.Sprintf("Located in %s, %s", listing.Neighborhood, listing.Location))
	} else if listing.Location != "" {
		parts = append(parts, fmt.Sprintf("Located in %s", listing.Location))
	}

	// Standout features
	if listing.StandoutFeatures != "" {
		feature := strings.TrimSpace(strings.Split(listing.StandoutFeatures, ",")[0])
		parts = append(parts, fmt.Sprintf("with %s", feature))
	}

	// Configuration details
	var configParts []string
	if listing.PrivateOffices != nil && *listing.PrivateOffices > 0 {
		n := *listing.PrivateOffices
		configParts = append(configParts, fmt.Sprintf("%d private office%s", n, utils.PluralSuffix(n)))
	}
	if listing.ConferenceRooms != nil && *listing.ConferenceRooms > 0 {
		n := *listing.ConferenceRooms
		configParts = append(configParts, fmt.Sprintf("%d meeting room%s", n, utils.PluralSuffix(n)))
	}
	if listing.DeskCapacity > 0 {
		configParts = append(configParts, fmt.Sprintf("space for %d desk%s", listing.DeskCapacity, utils.PluralSuffix(listing.DeskCapacity)))
	}
	if len(configParts) > 0 {
		parts = append(parts, "Includes "+strings.Join(configParts, ", "))
	}

	// Target audience
	if listing.DeskCapacity >= 10 {
		parts = append(parts, "Perfect for growing teams looking for an inspiring workspace")
	} else {
		parts = append(parts, "Perfect for small teams or startups")
	}

	return strings.Join(parts, ". ") + "."
}

// GenerateFormattedListing renders the canonical shareable plain-text document
// for a completed listing. The output is a pure function of the listing.
func GenerateFormattedListing(listing *model.Listing) string {
	var lines []string

	lines = append(lines, listing.Title)
	lines = append(lines, "")

	stats := []string{
		fmt.Sprintf("%s sq ft", utils.FormatThousands(listing.SquareFeet)),
		fmt.Sprintf("%d desk%s", listing.DeskCapacity, utils.PluralSuffix(listing.DeskCapacity)),
		fmt.Sprintf("$%s/mo", utils.FormatThousands(listing.MonthlyRate)),
	}
	lines = append(lines, strings.Join(stats, " • "))
	lines = append(lines, "")

	lines = append(lines, listing.Description)
	lines = append(lines, "")

	for _, amenity := range listing.Amenities {
		lines = append(lines, "✓ "+amenity)
	}
	if len(listing.Amenities) > 0 {
		lines = append(lines, "")
	}

	lines = append(lines, "Available "+listing.AvailableFrom)
	lines = append(lines, listing.MinimumTerm+" terms")
	if listing.Restrictions != nil && *listing.Restrictions != "" {
		lines = append(lines, *listing.Restrictions)
	} else {
		lines = append(lines, "No restrictions")
	}

	return strings.Join(lines, "\n")
}
