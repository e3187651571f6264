package search

import (
	"strings"

	"github.com/staynest/staynest-backend/internal/model"
	"github.com/umahmood/haversine"
)

// Filters holds the conjunctive predicates applied to a fetched property
// collection. A zero-value field means its predicate is skipped; the price
// bounds are pointers so an explicit [0,0] range (free listings only) is
// distinguishable from "no price filter".
type Filters struct {
	Location  string
	MinPrice  *float64
	MaxPrice  *float64
	Guests    int
	Bedrooms  int
	Bathrooms int
	Amenities []string
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64
}

func (f Filters) isZero() bool {
	return f.Location == "" &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		f.Guests == 0 && f.Bedrooms == 0 && f.Bathrooms == 0 &&
		len(f.Amenities) == 0 &&
		!f.hasRadius()
}

func (f Filters) hasRadius() bool {
	return f.Latitude != nil && f.Longitude != nil && f.RadiusKm > 0
}

// Apply filters properties in memory. It is a pure function: the input slice
// is never modified, and an empty filter set returns it unchanged.
func Apply(properties []model.Property, f Filters) []model.Property {
	if f.isZero() {
		return properties
	}
	out := make([]model.Property, 0, len(properties))
	for _, p := range properties {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p model.Property, f Filters) bool {
	if f.Location != "" && !matchesLocation(p, f.Location) {
		return false
	}
	if f.MinPrice != nil && p.PricePerNight < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.PricePerNight > *f.MaxPrice {
		return false
	}
	if f.Guests > 0 && p.MaxGuests < f.Guests {
		return false
	}
	if f.Bedrooms > 0 && p.Bedrooms < f.Bedrooms {
		return false
	}
	if f.Bathrooms > 0 && p.Bathrooms < f.Bathrooms {
		return false
	}
	if !hasAllAmenities(p.Amenities, f.Amenities) {
		return false
	}
	if f.hasRadius() && !withinRadius(p, *f.Latitude, *f.Longitude, f.RadiusKm) {
		return false
	}
	return true
}

func matchesLocation(p model.Property, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{p.City, p.State, p.Address, p.Title} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// hasAllAmenities is an all-of containment check, case-insensitive.
func hasAllAmenities(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, a := range have {
		set[strings.ToLower(a)] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[strings.ToLower(w)]; !ok {
			return false
		}
	}
	return true
}

func withinRadius(p model.Property, lat, lng, radiusKm float64) bool {
	if p.Latitude == nil || p.Longitude == nil {
		return false
	}
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat, Lon: lng},
		haversine.Coord{Lat: *p.Latitude, Lon: *p.Longitude},
	)
	return km <= radiusKm
}
