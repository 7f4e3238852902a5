package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spacelister/internal/model"
	"spacelister/internal/repository"
)

// ErrValidation marks a publish rejected for missing required fields.
var ErrValidation = errors.New("listing validation failed")

// ListingService publishes completed listings and serves them back by id.
type ListingService struct {
	repo repository.ListingStore
}

// NewListingService creates a listing service backed by the given store
func NewListingService(repo repository.ListingStore) *ListingService {
	return &ListingService{repo: repo}
}

// Publish validates and persists a completed listing, assigning a public
// listing id when one is absent. Repeat publishes for the same session upsert.
func (s *ListingService) Publish(ctx context.Context, listing *model.Listing) (*model.Listing, error) {
	var missing []string
	if listing.Location == "" {
		missing = append(missing, "location")
	}
	if listing.SquareFeet == 0 {
		missing = append(missing, "square_feet")
	}
	if listing.MonthlyRate == 0 {
		missing = append(missing, "monthly_rate")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	if listing.ListingID == "" {
		listing.ListingID = fmt.Sprintf("listing_%d_%s", time.Now().UnixMilli(), randomSuffix())
	}
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Save(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Get retrieves a published listing by id; nil when not found
func (s *ListingService) Get(ctx context.Context, listingID string) (*model.Listing, error) {
	return s.repo.GetByListingID(ctx, listingID)
}

// List returns all published listings
func (s *ListingService) List(ctx context.Context) ([]model.Listing, error) {
	return s.repo.List(ctx)
}

// Export renders the shareable plain-text document for a published listing;
// empty string when the listing does not exist.
func (s *ListingService) Export(ctx context.Context, listingID string) (string, error) {
	listing, err := s.repo.GetByListingID(ctx, listingID)
	if err != nil {
		return "", err
	}
	if listing == nil {
		return "", nil
	}
	return GenerateFormattedListing(listing), nil
}
