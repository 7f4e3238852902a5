package repository

import (
	"context"

	"spacelister/internal/model"
)

// ListingStore persists published listings. Saves upsert on session id, so
// republishing from the same conversation updates the existing listing.
type ListingStore interface {
	Save(ctx context.Context, listing *model.Listing) error
	GetByListingID(ctx context.Context, listingID string) (*model.Listing, error) // nil when not found
	List(ctx context.Context) ([]model.Listing, error)
	Close() error
}
