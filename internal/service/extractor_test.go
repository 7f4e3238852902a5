package service

import (
	"reflect"
	"testing"

	"spacelister/internal/model"
)

func TestExtractFields_Basics(t *testing.T) {
	t.Run("location from gazetteer", func(t *testing.T) {
		l := &model.Listing{}
		field, ok := ExtractFields(l, model.PhaseBasics, "We're in New York")
		if field != FieldLocation || !ok {
			t.Fatalf("ExtractFields = (%q, %v), want (%q, true)", field, ok, FieldLocation)
		}
		if l.Location != "new york" {
			t.Errorf("Location = %q, want %q", l.Location, "new york")
		}
	})

	t.Run("unrecognized location accepted verbatim", func(t *testing.T) {
		l := &model.Listing{}
		field, ok := ExtractFields(l, model.PhaseBasics, "Austin")
		if field != FieldLocation || !ok {
			t.Fatalf("ExtractFields = (%q, %v), want (%q, true)", field, ok, FieldLocation)
		}
		if l.Location != "Austin" {
			t.Errorf("Location = %q, want %q", l.Location, "Austin")
		}
	})

	t.Run("bare number is not a location", func(t *testing.T) {
		l := &model.Listing{}
		field, ok := ExtractFields(l, model.PhaseBasics, "3000")
		if field != FieldLocation || ok {
			t.Fatalf("ExtractFields = (%q, %v), want (%q, false)", field, ok, FieldLocation)
		}
		if l.Location != "" {
			t.Errorf("Location = %q, want unset", l.Location)
		}
	})

	t.Run("square footage above minimum accepted", func(t *testing.T) {
		l := &model.Listing{Location: "nyc", Neighborhood: "SoHo"}
		field, ok := ExtractFields(l, model.PhaseBasics, "500 sqft")
		if field != FieldSquareFeet || !ok {
			t.Fatalf("ExtractFields = (%q, %v), want (%q, true)", field, ok, FieldSquareFeet)
		}
		if l.SquareFeet != 500 {
			t.Errorf("SquareFeet = %d, want 500", l.SquareFeet)
		}
	})

	t.Run("square footage at or below minimum rejected and re-asked", func(t *testing.T) {
		l := &model.Listing{Location: "nyc", Neighborhood: "SoHo"}
		field, ok := ExtractFields(l, model.PhaseBasics, "50 sqft")
		if field != FieldSquareFeet || ok {
			t.Fatalf("ExtractFields = (%q, %v), want (%q, false)", field, ok, FieldSquareFeet)
		}
		if l.SquareFeet != 0 {
			t.Errorf("SquareFeet = %d, want unset", l.SquareFeet)
		}

		// The field stays the target of the next utterance.
		field, ok = ExtractFields(l, model.PhaseBasics, "3000 sqft")
		if field != FieldSquareFeet || !ok {
			t.Fatalf("retry ExtractFields = (%q, %v), want (%q, true)", field, ok, FieldSquareFeet)
		}
		if l.SquareFeet != 3000 {
			t.Errorf("SquareFeet = %d, want 3000", l.SquareFeet)
		}
	})

	t.Run("space type keywords", func(t *testing.T) {
		tests := []struct {
			utterance string
			want      string
		}{
			{"the entire floor", "Entire floor"},
			{"part of a larger office", "Partial floor"},
			{"private offices", "Private offices"},
			{"open plan loft", "open plan loft"},
		}
		for _, tt := range tests {
			l := &model.Listing{Location: "nyc", Neighborhood: "SoHo", SquareFeet: 3000}
			if _, ok := ExtractFields(l, model.PhaseBasics, tt.utterance); !ok {
				t.Fatalf("ExtractFields(%q) not extracted", tt.utterance)
			}
			if l.SpaceType != tt.want {
				t.Errorf("SpaceType for %q = %q, want %q", tt.utterance, l.SpaceType, tt.want)
			}
		}
	})

	t.Run("desk capacity bounds", func(t *testing.T) {
		l := &model.Listing{Location: "nyc", Neighborhood: "SoHo", SquareFeet: 3000, SpaceType: "Entire floor"}
		if _, ok := ExtractFields(l, model.PhaseBasics, "2000 desks"); ok {
			t.Error("desk capacity 2000 should be rejected")
		}
		if _, ok := ExtractFields(l, model.PhaseBasics, "25 desks"); !ok {
			t.Fatal("desk capacity 25 should be accepted")
		}
		if l.DeskCapacity != 25 {
			t.Errorf("DeskCapacity = %d, want 25", l.DeskCapacity)
		}
	})
}

func TestExtractFields_Config(t *testing.T) {
	t.Run("skip zeroes private offices", func(t *testing.T) {
		l := &model.Listing{}
		field, ok := ExtractFields(l, model.PhaseConfig, "skip")
		if field != FieldPrivateOffices || !ok {
			t.Fatalf("ExtractFields = (%q, %v), want (%q, true)", field, ok, FieldPrivateOffices)
		}
		if l.PrivateOffices == nil || *l.PrivateOffices != 0 {
			t.Errorf("PrivateOffices = %v, want 0", l.PrivateOffices)
		}
	})

	t.Run("explicit zero distinct from unset", func(t *testing.T) {
		l := &model.Listing{}
		if _, ok := ExtractFields(l, model.PhaseConfig, "0 offices"); !ok {
			t.Fatal("0 offices should be extracted")
		}
		if l.PrivateOffices == nil || *l.PrivateOffices != 0 {
			t.Fatalf("PrivateOffices = %v, want 0", l.PrivateOffices)
		}

		// The next utterance moves on to conference rooms.
		field, ok := ExtractFields(l, model.PhaseConfig, "2 meeting rooms")
		if field != FieldConferenceRooms || !ok {
			t.Fatalf("ExtractFields = (%q, %v), want (%q, true)", field, ok, FieldConferenceRooms)
		}
		if l.ConferenceRooms == nil || *l.ConferenceRooms != 2 {
			t.Errorf("ConferenceRooms = %v, want 2", l.ConferenceRooms)
		}
	})

	t.Run("multiple amenities from one utterance", func(t *testing.T) {
		zero := 0
		l := &model.Listing{PrivateOffices: &zero, ConferenceRooms: &zero}
		field, ok := ExtractFields(l, model.PhaseConfig, "fast wifi, a kitchen and parking")
		if field != FieldAmenities || !ok {
			t.Fatalf("ExtractFields = (%q, %v), want (%q, true)", field, ok, FieldAmenities)
		}
		want := model.JSONArray{"High-speed internet", "Kitchen/break room", "Parking"}
		if !reflect.DeepEqual(l.Amenities, want) {
			t.Errorf("Amenities = %v, want %v", l.Amenities, want)
		}
	})

	t.Run("synonym keywords map to one label", func(t *testing.T) {
		got := ExtractAmenityLabels("wifi and internet")
		if len(got) != 1 || got[0] != "High-speed internet" {
			t.Errorf("ExtractAmenityLabels = %v, want single High-speed internet", got)
		}
	})

	t.Run("standout features need a feature keyword or length", func(t *testing.T) {
		zero := 0
		l := &model.Listing{PrivateOffices: &zero, ConferenceRooms: &zero, Amenities: model.JSONArray{"Parking"}}

		if _, ok := ExtractFields(l, model.PhaseConfig, "nope"); ok {
			t.Error("short non-feature answer should be rejected")
		}
		if _, ok := ExtractFields(l, model.PhaseConfig, "exposed brick walls"); !ok {
			t.Fatal("feature keyword answer should be accepted")
		}
		if l.StandoutFeatures != "exposed brick walls" {
			t.Errorf("StandoutFeatures = %q", l.StandoutFeatures)
		}
	})
}

func TestExtractFields_Terms(t *testing.T) {
	t.Run("restrictions negation is explicit none", func(t *testing.T) {
		l := &model.Listing{AvailableFrom: "immediate", MinimumTerm: "6 months"}
		field, ok := ExtractFields(l, model.PhaseTerms, "none")
		if field != FieldRestrictions || !ok {
			t.Fatalf("ExtractFields = (%q, %v), want (%q, true)", field, ok, FieldRestrictions)
		}
		if l.Restrictions == nil || *l.Restrictions != "" {
			t.Errorf("Restrictions = %v, want explicit empty", l.Restrictions)
		}
	})

	t.Run("restriction text kept verbatim", func(t *testing.T) {
		l := &model.Listing{AvailableFrom: "immediate", MinimumTerm: "6 months"}
		if _, ok := ExtractFields(l, model.PhaseTerms, "quiet businesses only"); !ok {
			t.Fatal("restriction text should be accepted")
		}
		if l.Restrictions == nil || *l.Restrictions != "quiet businesses only" {
			t.Errorf("Restrictions = %v", l.Restrictions)
		}
	})
}

func TestExtractFields_Pricing(t *testing.T) {
	l := &model.Listing{SquareFeet: 3000}

	if _, ok := ExtractFields(l, model.PhasePricing, "hmm"); ok {
		t.Error("non-numeric rate should be rejected")
	}

	field, ok := ExtractFields(l, model.PhasePricing, "$9,000")
	if field != FieldMonthlyRate || !ok {
		t.Fatalf("ExtractFields = (%q, %v), want (%q, true)", field, ok, FieldMonthlyRate)
	}
	if l.MonthlyRate != 9000 {
		t.Errorf("MonthlyRate = %d, want 9000", l.MonthlyRate)
	}
	if l.PricePerSqft != 3.0 {
		t.Errorf("PricePerSqft = %.2f, want 3.00", l.PricePerSqft)
	}
}

func TestExtractFields_NoUnsetField(t *testing.T) {
	// A fully answered phase leaves the utterance unconsumed.
	l := &model.Listing{
		Location: "nyc", Neighborhood: "SoHo", SquareFeet: 3000,
		SpaceType: "Entire floor", DeskCapacity: 25,
	}
	field, ok := ExtractFields(l, model.PhaseBasics, "anything at all")
	if field != "" || ok {
		t.Errorf("ExtractFields = (%q, %v), want no-op", field, ok)
	}
}

func TestMatchCity(t *testing.T) {
	if city, ok := MatchCity("downtown San Francisco"); !ok || city != "san francisco" {
		t.Errorf("MatchCity = (%q, %v)", city, ok)
	}
	if _, ok := MatchCity("Denver"); ok {
		t.Error("Denver should not match the gazetteer")
	}
}
