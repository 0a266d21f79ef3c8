package usecase

import (
	"fmt"
	"slices"

	"recommendation-service/internal/core/domain"
)

// Signals are the five raw inputs of a score.
type Signals struct {
	Affordability  float64
	Location       float64
	LandlordRating float64
	Sustainability float64
	Safety         float64
}

// ScoringEngine turns a candidate into a weighted score.
type ScoringEngine struct {
	weights domain.ScoreWeights
}

func NewScoringEngine(weights domain.ScoreWeights) (*ScoringEngine, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("scoring engine: %w", err)
	}
	return &ScoringEngine{weights: weights}, nil
}

// Weights returns the weights the engine was built with.
func (e *ScoringEngine) Weights() domain.ScoreWeights {
	return e.weights
}

// Signals computes the raw signals. preferredLocations must already be normalized.
// Affordability falls below zero once the rent passes the ceiling and is not clamped.
func (e *ScoringEngine) Signals(c domain.Candidate, maxAffordableRent float64, preferredLocations []string) Signals {
	s := Signals{
		Affordability:  1,
		LandlordRating: c.LandlordRating(),
		Sustainability: c.Sustainability(),
		Safety:         c.NeighborhoodSafety(),
	}
	if rent := c.Property.MonthlyRent; rent > maxAffordableRent {
		s.Affordability = 1 - rent/maxAffordableRent
	}
	if slices.Contains(preferredLocations, domain.NormalizeLocation(c.Property.Location)) {
		s.Location = 1
	}
	return s
}

// Combine applies the weights to s and divides the weighted sum by the number
// of signals. The result is not clamped.
func (e *ScoringEngine) Combine(s Signals) float64 {
	w := e.weights
	sum := s.Affordability*w.Affordability +
		s.Location*w.Location +
		s.LandlordRating*w.LandlordRating +
		s.Sustainability*w.Sustainability +
		s.Safety*w.Safety
	return sum / domain.SignalCount
}

// Score is Combine(Signals(...)).
func (e *ScoringEngine) Score(c domain.Candidate, maxAffordableRent float64, preferredLocations []string) float64 {
	return e.Combine(e.Signals(c, maxAffordableRent, preferredLocations))
}
