package repository

import (
	"context"
	"sync"

	"spacelister/internal/model"
)

// MemoryRepository is an in-process listing store used in tests and when
// PostgreSQL is not configured. Listings are kept in publish order.
type MemoryRepository struct {
	mu       sync.RWMutex
	listings []model.Listing
}

// NewMemoryRepository creates an empty in-memory listing store
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Save upserts a listing keyed by session id
func (r *MemoryRepository) Save(ctx context.Context, listing *model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.listings {
		if r.listings[i].SessionID == listing.SessionID {
			r.listings[i] = *listing
			return nil
		}
	}
	r.listings = append(r.listings, *listing)
	return nil
}

// GetByListingID retrieves a single listing by its public id
func (r *MemoryRepository) GetByListingID(ctx context.Context, listingID string) (*model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.listings {
		if r.listings[i].ListingID == listingID {
			listing := r.listings[i]
			return &listing, nil
		}
	}
	return nil, nil
}

// List returns all published listings
func (r *MemoryRepository) List(ctx context.Context) ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Listing, len(r.listings))
	copy(out, r.listings)
	return out, nil
}

// Close is a no-op for the in-memory store
func (r *MemoryRepository) Close() error {
	return nil
}
