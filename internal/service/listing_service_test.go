package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"spacelister/internal/model"
	"spacelister/internal/repository"
)

func TestListingService_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns listing id and saves", func(t *testing.T) {
		svc := NewListingService(repository.NewMemoryRepository())
		listing := &model.Listing{
			Location:    "new york",
			SquareFeet:  3000,
			MonthlyRate: 9000,
			SessionID:   "session_1_abc",
		}

		published, err := svc.Publish(ctx, listing)
		if err != nil {
			t.Fatalf("Publish error: %v", err)
		}
		if !strings.HasPrefix(published.ListingID, "listing_") {
			t.Errorf("ListingID = %q, want listing_ prefix", published.ListingID)
		}
		if published.CreatedAt.IsZero() {
			t.Error("CreatedAt should be set")
		}

		stored, err := svc.Get(ctx, published.ListingID)
		if err != nil {
			t.Fatalf("Get error: %v", err)
		}
		if stored == nil {
			t.Fatal("published listing not retrievable by id")
		}
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		svc := NewListingService(repository.NewMemoryRepository())

		tests := []struct {
			name    string
			listing model.Listing
		}{
			{name: "missing monthly rate", listing: model.Listing{Location: "new york", SquareFeet: 3000}},
			{name: "missing location", listing: model.Listing{SquareFeet: 3000, MonthlyRate: 9000}},
			{name: "missing square feet", listing: model.Listing{Location: "new york", MonthlyRate: 9000}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Publish(ctx, &tt.listing)
				if !errors.Is(err, ErrValidation) {
					t.Errorf("Publish error = %v, want ErrValidation", err)
				}
			})
		}
	})

	t.Run("republish for same session upserts", func(t *testing.T) {
		svc := NewListingService(repository.NewMemoryRepository())
		listing := &model.Listing{
			Location:    "new york",
			SquareFeet:  3000,
			MonthlyRate: 9000,
			SessionID:   "session_1_abc",
		}

		first, err := svc.Publish(ctx, listing)
		if err != nil {
			t.Fatalf("Publish error: %v", err)
		}

		listing.MonthlyRate = 9500
		if _, err := svc.Publish(ctx, listing); err != nil {
			t.Fatalf("republish error: %v", err)
		}

		all, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("List error: %v", err)
		}
		if len(all) != 1 {
			t.Fatalf("got %d listings after republish, want 1", len(all))
		}
		if all[0].MonthlyRate != 9500 {
			t.Errorf("MonthlyRate = %d, want 9500", all[0].MonthlyRate)
		}
		if all[0].ListingID != first.ListingID {
			t.Errorf("ListingID changed across republish: %q vs %q", all[0].ListingID, first.ListingID)
		}
	})
}

func TestListingService_Get_NotFound(t *testing.T) {
	svc := NewListingService(repository.NewMemoryRepository())

	listing, err := svc.Get(context.Background(), "listing_0_missing")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if listing != nil {
		t.Errorf("Get = %+v, want nil for unknown id", listing)
	}
}

func TestListingService_Export(t *testing.T) {
	ctx := context.Background()
	svc := NewListingService(repository.NewMemoryRepository())

	published, err := svc.Publish(ctx, &model.Listing{
		Title:         "Office Space in SoHo",
		Description:   "Perfect for small teams or startups.",
		Location:      "new york",
		SquareFeet:    3000,
		DeskCapacity:  25,
		MonthlyRate:   9000,
		AvailableFrom: "immediate",
		MinimumTerm:   "6 months",
		SessionID:     "session_1_abc",
	})
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	document, err := svc.Export(ctx, published.ListingID)
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if !strings.Contains(document, "Office Space in SoHo") {
		t.Errorf("export missing title: %q", document)
	}
	if !strings.Contains(document, "$9,000/mo") {
		t.Errorf("export missing rate: %q", document)
	}

	missing, err := svc.Export(ctx, "listing_0_missing")
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if missing != "" {
		t.Errorf("export for unknown id = %q, want empty", missing)
	}
}
