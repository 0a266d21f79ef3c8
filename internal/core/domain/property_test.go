package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestPropertyFilterMatches(t *testing.T) {
	base := Property{
		ID:          uuid.New(),
		Type:        "Apartment",
		Bedrooms:    2,
		MonthlyRent: 1000,
		Location:    "downtown",
	}

	tests := []struct {
		name   string
		filter PropertyFilter
		want   bool
	}{
		{"rent at ceiling", PropertyFilter{MaxRent: 1000, Locations: []string{"downtown"}}, true},
		{"rent above ceiling", PropertyFilter{MaxRent: 999.99, Locations: []string{"downtown"}}, false},
		{"location not preferred", PropertyFilter{MaxRent: 2000, Locations: []string{"uptown"}}, false},
		{"location match is exact", PropertyFilter{MaxRent: 2000, Locations: []string{"Downtown"}}, false},
		{"type absent", PropertyFilter{MaxRent: 2000, Locations: []string{"downtown"}, Types: nil}, true},
		{"type matches", PropertyFilter{MaxRent: 2000, Locations: []string{"downtown"}, Types: []string{"House", "Apartment"}}, true},
		{"type mismatch", PropertyFilter{MaxRent: 2000, Locations: []string{"downtown"}, Types: []string{"House"}}, false},
		{"empty type list matches nothing", PropertyFilter{MaxRent: 2000, Locations: []string{"downtown"}, Types: []string{}}, false},
		{"bedrooms at minimum", PropertyFilter{MaxRent: 2000, Locations: []string{"downtown"}, MinBedrooms: intPtr(2)}, true},
		{"bedrooms below minimum", PropertyFilter{MaxRent: 2000, Locations: []string{"downtown"}, MinBedrooms: intPtr(3)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			assert.Equal(t, tt.want, tt.filter.Matches(&p))
		})
	}

	assert.False(t, PropertyFilter{MaxRent: 1}.Matches(nil))
}

func TestCandidateAccessorsDefaultToZero(t *testing.T) {
	var c Candidate
	assert.Zero(t, c.LandlordRating())
	assert.Zero(t, c.Sustainability())
	assert.Zero(t, c.NeighborhoodSafety())

	rating, score, safety := 4.5, 0.8, 7.0
	c = Candidate{
		Property:     Property{SustainabilityScore: &score},
		Landlord:     &Landlord{Rating: &rating},
		Neighborhood: &Neighborhood{SafetyRating: &safety},
	}
	assert.Equal(t, 4.5, c.LandlordRating())
	assert.Equal(t, 0.8, c.Sustainability())
	assert.Equal(t, 7.0, c.NeighborhoodSafety())

	c.Landlord = &Landlord{}
	assert.Zero(t, c.LandlordRating())
}
