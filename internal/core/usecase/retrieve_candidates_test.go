package usecase

import (
	"context"
	"errors"
	"testing"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalog struct {
	store     *memoryStore
	landlordA uuid.UUID
	landlordB uuid.UUID
}

func newCatalog() catalog {
	a, b := uuid.New(), uuid.New()
	return catalog{
		landlordA: a,
		landlordB: b,
		store: &memoryStore{
			landlords: []domain.Landlord{
				{ID: uuid.New(), LandlordID: a, Rating: floatPtr(4)},
				{ID: uuid.New(), LandlordID: a, Rating: floatPtr(1)}, // duplicate, later row loses
				{ID: uuid.New(), LandlordID: b, Rating: floatPtr(5)},
			},
			neighborhoods: []domain.Neighborhood{
				{ID: uuid.New(), Name: "downtown", SafetyRating: floatPtr(6)},
				{ID: uuid.New(), Name: "uptown", SafetyRating: floatPtr(9)},
			},
		},
	}
}

func (c catalog) property(rent float64, location, typ string, bedrooms int, sustainability *float64, landlord uuid.UUID) domain.Property {
	return domain.Property{
		ID:                  uuid.New(),
		MonthlyRent:         rent,
		Location:            location,
		Type:                typ,
		Bedrooms:            bedrooms,
		SustainabilityScore: sustainability,
		LandlordID:          landlord,
		AvailabilityStatus:  domain.StatusAvailable,
	}
}

func TestRetrieveNeverReturnsRowsOutsideFilter(t *testing.T) {
	c := newCatalog()
	c.store.properties = []domain.Property{
		c.property(900, "downtown", "Apartment", 2, nil, c.landlordA),
		c.property(1100, "downtown", "Apartment", 2, nil, c.landlordA), // too expensive
		c.property(900, "suburbs", "Apartment", 2, nil, c.landlordA),   // wrong location
		c.property(900, "uptown", "House", 2, nil, c.landlordB),        // wrong type
		c.property(900, "uptown", "Apartment", 1, nil, c.landlordB),    // too few bedrooms
		c.property(1000, "uptown", "Apartment", 3, nil, c.landlordB),
	}
	filter := domain.PropertyFilter{
		MaxRent:     1000,
		Locations:   []string{"downtown", "uptown"},
		Types:       []string{"Apartment"},
		MinBedrooms: intPtr(2),
	}

	got, err := NewCandidateRetriever(c.store).Retrieve(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, cand := range got {
		assert.True(t, filter.Matches(&cand.Property))
	}
}

func TestRetrieveNoFanOut(t *testing.T) {
	c := newCatalog()
	p := c.property(500, "downtown", "Apartment", 1, nil, c.landlordA)
	c.store.properties = []domain.Property{p, p, c.property(600, "downtown", "Apartment", 1, nil, c.landlordA)}

	got, err := NewCandidateRetriever(c.store).Retrieve(context.Background(), domain.PropertyFilter{
		MaxRent:   1000,
		Locations: []string{"downtown"},
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// first landlord row wins and each key is resolved once
	for _, cand := range got {
		require.NotNil(t, cand.Landlord)
		assert.Equal(t, 4.0, *cand.Landlord.Rating)
	}
	assert.Equal(t, 1, c.store.landlordCalls[c.landlordA])
	assert.Equal(t, 1, c.store.neighborhoodCalls["downtown"])
}

func TestRetrieveDropsCandidatesWithMissingJoins(t *testing.T) {
	c := newCatalog()
	kept := c.property(500, "downtown", "Apartment", 1, nil, c.landlordA)
	c.store.properties = []domain.Property{
		c.property(500, "riverside", "Apartment", 1, nil, c.landlordA), // no neighborhood
		c.property(500, "downtown", "Apartment", 1, nil, uuid.New()),   // no landlord
		c.property(500, "riverside", "Apartment", 1, nil, uuid.New()),  // neither
		kept,
	}

	got, err := NewCandidateRetriever(c.store).Retrieve(context.Background(), domain.PropertyFilter{
		MaxRent:   1000,
		Locations: []string{"downtown", "riverside"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, kept.ID, got[0].Property.ID)
	assert.NotNil(t, got[0].Landlord)
	assert.NotNil(t, got[0].Neighborhood)
}

func TestRetrieveKeepsJoinedRecordsWithMissingRatings(t *testing.T) {
	c := newCatalog()
	unrated := uuid.New()
	c.store.landlords = append(c.store.landlords, domain.Landlord{ID: uuid.New(), LandlordID: unrated})
	c.store.properties = []domain.Property{c.property(500, "downtown", "Apartment", 1, nil, unrated)}

	got, err := NewCandidateRetriever(c.store).Retrieve(context.Background(), domain.PropertyFilter{
		MaxRent:   1000,
		Locations: []string{"downtown"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Landlord.Rating)
	assert.Equal(t, 0.0, got[0].LandlordRating())
}

func TestRetrieveOrdering(t *testing.T) {
	c := newCatalog()
	low := c.property(500, "downtown", "Apartment", 1, floatPtr(0.2), c.landlordA)
	high := c.property(500, "downtown", "Apartment", 1, floatPtr(0.9), c.landlordA)
	tieBetterLandlord := c.property(500, "downtown", "Apartment", 1, floatPtr(0.5), c.landlordB)
	tieWorseLandlord := c.property(500, "downtown", "Apartment", 1, floatPtr(0.5), c.landlordA)
	tieSaferArea := c.property(500, "uptown", "Apartment", 1, floatPtr(0.5), c.landlordA)
	missing := c.property(500, "downtown", "Apartment", 1, nil, c.landlordA)
	c.store.properties = []domain.Property{missing, low, tieWorseLandlord, tieSaferArea, high, tieBetterLandlord}

	got, err := NewCandidateRetriever(c.store).Retrieve(context.Background(), domain.PropertyFilter{
		MaxRent:   1000,
		Locations: []string{"downtown", "uptown"},
	})
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, len(got))
	for _, cand := range got {
		ids = append(ids, cand.Property.ID)
	}
	assert.Equal(t, []uuid.UUID{high.ID, tieBetterLandlord.ID, tieSaferArea.ID, tieWorseLandlord.ID, low.ID, missing.ID}, ids)
}

func TestSortCandidatesIsStable(t *testing.T) {
	first := domain.Candidate{Property: domain.Property{ID: uuid.New()}}
	second := domain.Candidate{Property: domain.Property{ID: uuid.New()}}
	cands := []domain.Candidate{first, second}
	SortCandidates(cands)
	assert.Equal(t, first.Property.ID, cands[0].Property.ID)
}

func TestSortCandidatesPutsMissingValuesLast(t *testing.T) {
	landlord := &domain.Landlord{Rating: floatPtr(3)}
	area := &domain.Neighborhood{SafetyRating: floatPtr(3)}
	negative := domain.Candidate{Property: domain.Property{ID: uuid.New(), SustainabilityScore: floatPtr(-1)}, Landlord: landlord, Neighborhood: area}
	missing := domain.Candidate{Property: domain.Property{ID: uuid.New()}, Landlord: landlord, Neighborhood: area}
	unratedLandlord := domain.Candidate{Property: domain.Property{ID: uuid.New(), SustainabilityScore: floatPtr(-1)}, Landlord: &domain.Landlord{}, Neighborhood: area}

	cands := []domain.Candidate{missing, unratedLandlord, negative}
	SortCandidates(cands)

	assert.Equal(t, []uuid.UUID{negative.Property.ID, unratedLandlord.Property.ID, missing.Property.ID},
		[]uuid.UUID{cands[0].Property.ID, cands[1].Property.ID, cands[2].Property.ID})
}

func TestRetrieveRequiresLocations(t *testing.T) {
	_, err := NewCandidateRetriever(&memoryStore{}).Retrieve(context.Background(), domain.PropertyFilter{MaxRent: 1000})
	assert.ErrorIs(t, err, domain.ErrValidationFailure)
}

func TestRetrieveWrapsStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")
	filter := domain.PropertyFilter{MaxRent: 1000, Locations: []string{"downtown"}}

	_, err := NewCandidateRetriever(&memoryStore{propertiesErr: boom}).Retrieve(context.Background(), filter)
	assert.ErrorIs(t, err, domain.ErrRetrievalFailure)
	assert.ErrorIs(t, err, boom)

	c := newCatalog()
	c.store.properties = []domain.Property{c.property(500, "downtown", "Apartment", 1, nil, c.landlordA)}
	c.store.landlordErr = boom
	_, err = NewCandidateRetriever(c.store).Retrieve(context.Background(), filter)
	assert.ErrorIs(t, err, domain.ErrRetrievalFailure)

	c.store.landlordErr = nil
	c.store.neighborhoodErr = boom
	_, err = NewCandidateRetriever(c.store).Retrieve(context.Background(), filter)
	assert.ErrorIs(t, err, domain.ErrRetrievalFailure)
}
