package domain

import "github.com/google/uuid"

// Candidate is a matched property with its optional landlord and neighborhood.
// It only lives for the duration of one request.
type Candidate struct {
	Property     Property
	Landlord     *Landlord
	Neighborhood *Neighborhood
}

// LandlordRating returns the landlord rating, 0 when unknown.
func (c Candidate) LandlordRating() float64 {
	if c.Landlord == nil {
		return 0
	}
	return valueOrZero(c.Landlord.Rating)
}

// Sustainability returns the property sustainability score, 0 when unknown.
func (c Candidate) Sustainability() float64 {
	return valueOrZero(c.Property.SustainabilityScore)
}

// NeighborhoodSafety returns the neighborhood safety rating, 0 when unknown.
func (c Candidate) NeighborhoodSafety() float64 {
	if c.Neighborhood == nil {
		return 0
	}
	return valueOrZero(c.Neighborhood.SafetyRating)
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// ScoredCandidate is a candidate with its score and the outcome of its write.
type ScoredCandidate struct {
	Candidate
	Score     float64
	Persisted bool
	// Err is set when the recommendation could not be stored.
	Err error
}

// RecommendationResult is what the orchestrator returns for one request.
type RecommendationResult struct {
	UserID          uuid.UUID
	MaxAffordable   float64
	Recommendations []ScoredCandidate
	PersistedCount  int
}
