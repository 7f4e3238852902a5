package service

import (
	"math"
	"testing"

	"spacelister/internal/model"
)

func TestGetLocationTier(t *testing.T) {
	tests := []struct {
		name         string
		city         string
		neighborhood string
		want         string
	}{
		{name: "nyc fidi", city: "new york", neighborhood: "Financial District", want: "nyc_fidi"},
		{name: "nyc fidi abbreviation", city: "nyc", neighborhood: "FiDi", want: "nyc_fidi"},
		{name: "nyc midtown", city: "nyc", neighborhood: "Midtown East", want: "nyc_midtown"},
		{name: "nyc other", city: "new york", neighborhood: "Bushwick", want: "nyc_other"},
		{name: "sf soma", city: "san francisco", neighborhood: "SOMA", want: "sf_soma"},
		{name: "sf financial", city: "sf", neighborhood: "Financial District", want: "sf_soma"},
		{name: "sf other", city: "san francisco", neighborhood: "Mission", want: "sf_other"},
		{name: "los angeles", city: "los angeles", neighborhood: "Downtown", want: "la"},
		{name: "unknown city", city: "Denver", neighborhood: "RiNo", want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetLocationTier(tt.city, tt.neighborhood); got != tt.want {
				t.Errorf("GetLocationTier(%q, %q) = %q, want %q", tt.city, tt.neighborhood, got, tt.want)
			}
		})
	}
}

func TestCalculateSuggestedPrice(t *testing.T) {
	t.Run("soma with amenity and feature multipliers", func(t *testing.T) {
		listing := &model.Listing{
			Location:     "san francisco",
			Neighborhood: "SOMA",
			SquareFeet:   3000,
			Amenities: model.JSONArray{
				"High-speed internet", "Kitchen/break room", "Meeting rooms",
				"Natural light/windows", "24/7 access",
			},
			StandoutFeatures: "exposed brick, city views",
		}

		got := CalculateSuggestedPrice(listing)

		// sf_soma midpoint 3.40, +10% for 5 amenities, +15% for premium feature
		wantPerSqft := 3.40 * 1.10 * 1.15
		if math.Abs(got.PricePerSqft-wantPerSqft) > 0.001 {
			t.Errorf("PricePerSqft = %.4f, want %.4f", got.PricePerSqft, wantPerSqft)
		}

		wantBase := wantPerSqft * 3000
		if math.Abs(got.BasePrice-wantBase) > 0.01 {
			t.Errorf("BasePrice = %.2f, want %.2f", got.BasePrice, wantBase)
		}
		if math.Abs(got.SuggestedRange.Min-wantBase*0.9) > 0.01 {
			t.Errorf("Range.Min = %.2f, want %.2f", got.SuggestedRange.Min, wantBase*0.9)
		}
		if math.Abs(got.SuggestedRange.Max-wantBase*1.1) > 0.01 {
			t.Errorf("Range.Max = %.2f, want %.2f", got.SuggestedRange.Max, wantBase*1.1)
		}
	})

	t.Run("no multipliers below thresholds", func(t *testing.T) {
		listing := &model.Listing{
			Location:     "nyc",
			Neighborhood: "Bushwick",
			SquareFeet:   1000,
			Amenities:    model.JSONArray{"Parking", "Kitchen/break room"},
		}

		got := CalculateSuggestedPrice(listing)

		// nyc_other midpoint only
		if math.Abs(got.PricePerSqft-2.50) > 0.001 {
			t.Errorf("PricePerSqft = %.4f, want 2.50", got.PricePerSqft)
		}
		if math.Abs(got.BasePrice-2500) > 0.01 {
			t.Errorf("BasePrice = %.2f, want 2500", got.BasePrice)
		}
	})

	t.Run("feature multiplier applies once", func(t *testing.T) {
		listing := &model.Listing{
			Location:         "los angeles",
			Neighborhood:     "Downtown",
			SquareFeet:       2000,
			StandoutFeatures: "city views, renovated, exposed brick",
		}

		got := CalculateSuggestedPrice(listing)
		want := 2.30 * 1.15
		if math.Abs(got.PricePerSqft-want) > 0.001 {
			t.Errorf("PricePerSqft = %.4f, want %.4f", got.PricePerSqft, want)
		}
	})

	t.Run("missing inputs yield zero suggestion", func(t *testing.T) {
		got := CalculateSuggestedPrice(&model.Listing{Location: "nyc", SquareFeet: 3000})
		if got.BasePrice != 0 || got.PricePerSqft != 0 {
			t.Errorf("expected zero suggestion, got %+v", got)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		listing := &model.Listing{Location: "sf", Neighborhood: "SOMA", SquareFeet: 3000}
		first := CalculateSuggestedPrice(listing)
		second := CalculateSuggestedPrice(listing)
		if first != second {
			t.Errorf("suggestion changed between calls: %+v vs %+v", first, second)
		}
	})
}

func TestGetComparables(t *testing.T) {
	t.Run("filters by city and size", func(t *testing.T) {
		listing := &model.Listing{Location: "new york", SquareFeet: 3000}
		got := GetComparables(listing)
		if len(got) != 2 {
			t.Fatalf("got %d comparables, want 2", len(got))
		}
		for _, comp := range got {
			if comp.Location != "New York" {
				t.Errorf("comparable from %s, want New York", comp.Location)
			}
		}
	})

	t.Run("single survivor falls back to unfiltered head", func(t *testing.T) {
		listing := &model.Listing{Location: "san francisco", SquareFeet: 3000}
		got := GetComparables(listing)
		if len(got) != 3 {
			t.Fatalf("got %d comparables, want 3", len(got))
		}
		if got[0].ID != "1" {
			t.Errorf("fallback should start at the reference head, got ID %s", got[0].ID)
		}
	})

	t.Run("never empty without inputs", func(t *testing.T) {
		got := GetComparables(&model.Listing{})
		if len(got) != 3 {
			t.Fatalf("got %d comparables, want 3", len(got))
		}
	})

	t.Run("at most three", func(t *testing.T) {
		got := GetComparables(&model.Listing{Location: "new york", SquareFeet: 100000})
		if len(got) > 3 {
			t.Errorf("got %d comparables, want at most 3", len(got))
		}
	})
}
