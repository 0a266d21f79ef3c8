package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is an append-only record of one scored candidate shown to a user.
type Recommendation struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	PropertyID      uuid.UUID
	Score           float64
	DateRecommended time.Time
}

// NewRecommendation creates a record dated now.
func NewRecommendation(userID, propertyID uuid.UUID, score float64) *Recommendation {
	return &Recommendation{
		ID:              uuid.New(),
		UserID:          userID,
		PropertyID:      propertyID,
		Score:           score,
		DateRecommended: time.Now().UTC(),
	}
}

// RecommendationRequest holds the request-scoped tenant preferences.
// Locations are expected lower-cased and trimmed.
type RecommendationRequest struct {
	HouseholdIncome    float64
	PreferredLocations []string
	PropertyTypes      []string
	MinBedrooms        *int
	MaxRent            *float64
}
