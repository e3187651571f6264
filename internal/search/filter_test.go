package search

import (
	"testing"

	"github.com/staynest/staynest-backend/internal/model"
)

func f64(v float64) *float64 { return &v }

func sampleProperties() []model.Property {
	return []model.Property{
		{
			ID: 1, Title: "Cozy Beachfront Villa", Address: "123 Beach Road",
			City: "Malibu", State: "California", PricePerNight: 299,
			MaxGuests: 6, Bedrooms: 3, Bathrooms: 2,
			Amenities: []string{"WiFi", "Pool", "Kitchen"},
		},
		{
			ID: 2, Title: "Modern Downtown Loft", Address: "456 Downtown Ave",
			City: "New York", State: "NY", PricePerNight: 189,
			MaxGuests: 2, Bedrooms: 1, Bathrooms: 1,
			Amenities: []string{"WiFi", "Gym"},
		},
		{
			ID: 3, Title: "Garden Studio", Address: "9 Rose Lane",
			City: "Austin", State: "Texas", PricePerNight: 0,
			MaxGuests: 2, Bedrooms: 1, Bathrooms: 1,
			Amenities: []string{"WiFi", "Pool", "Parking"},
		},
	}
}

func ids(props []model.Property) []uint64 {
	out := make([]uint64, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []model.Property, want ...uint64) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v want %v", gotIDs, want)
		}
	}
}

func TestApplyEmptyFiltersReturnsInputUnchanged(t *testing.T) {
	props := sampleProperties()
	got := Apply(props, Filters{})
	if len(got) != len(props) {
		t.Fatalf("got %d want %d", len(got), len(props))
	}
	if &got[0] != &props[0] {
		t.Fatalf("empty filter must return the input slice unchanged")
	}
}

func TestApplyPriceRange(t *testing.T) {
	tests := []struct {
		name string
		f    Filters
		want []uint64
	}{
		{"zero range keeps free listings only", Filters{MinPrice: f64(0), MaxPrice: f64(0)}, []uint64{3}},
		{"inclusive upper bound", Filters{MaxPrice: f64(189)}, []uint64{2, 3}},
		{"inclusive lower bound", Filters{MinPrice: f64(189)}, []uint64{1, 2}},
		{"band", Filters{MinPrice: f64(100), MaxPrice: f64(200)}, []uint64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertIDs(t, Apply(sampleProperties(), tt.f), tt.want...)
		})
	}
}

func TestApplyLocationSubstringCaseInsensitive(t *testing.T) {
	tests := []struct {
		query string
		want  []uint64
	}{
		{"malibu", []uint64{1}},
		{"ROAD", []uint64{1}},
		{"new", []uint64{2}},
		{"loft", []uint64{2}},
		{"nowhere", nil},
	}
	for _, tt := range tests {
		assertIDs(t, Apply(sampleProperties(), Filters{Location: tt.query}), tt.want...)
	}
}

func TestApplyAmenitiesRequiresAll(t *testing.T) {
	got := Apply(sampleProperties(), Filters{Amenities: []string{"WiFi", "Pool"}})
	assertIDs(t, got, 1, 3)

	got = Apply(sampleProperties(), Filters{Amenities: []string{"WiFi", "Pool", "Parking"}})
	assertIDs(t, got, 3)
}

func TestApplyMinimumThresholds(t *testing.T) {
	assertIDs(t, Apply(sampleProperties(), Filters{Guests: 3}), 1)
	assertIDs(t, Apply(sampleProperties(), Filters{Bedrooms: 2}), 1)
	assertIDs(t, Apply(sampleProperties(), Filters{Bathrooms: 1}), 1, 2, 3)
}

func TestApplyConjunction(t *testing.T) {
	f := Filters{Location: "a", Amenities: []string{"Pool"}, MaxPrice: f64(100)}
	assertIDs(t, Apply(sampleProperties(), f), 3)
}

func TestApplyRadius(t *testing.T) {
	props := sampleProperties()
	props[0].Latitude = f64(34.0259)
	props[0].Longitude = f64(-118.7798)
	props[1].Latitude = f64(40.7128)
	props[1].Longitude = f64(-74.0060)

	f := Filters{Latitude: f64(34.0), Longitude: f64(-118.8), RadiusKm: 50}
	// property 3 has no coordinates and is excluded when a radius is active
	assertIDs(t, Apply(props, f), 1)
}
