package usecase

import (
	"testing"

	"recommendation-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *ScoringEngine {
	t.Helper()
	engine, err := NewScoringEngine(domain.DefaultScoreWeights)
	require.NoError(t, err)
	return engine
}

func TestScoringSignalsOverCeiling(t *testing.T) {
	engine := newTestEngine(t)
	ceiling, err := MaxAffordableRent(3000, nil)
	require.NoError(t, err)
	require.Equal(t, 1000.0, ceiling)

	c := domain.Candidate{Property: domain.Property{MonthlyRent: 1500, Location: "suburbs"}}
	s := engine.Signals(c, ceiling, []string{"downtown"})

	assert.InDelta(t, -0.5, s.Affordability, 1e-12)
	assert.Zero(t, s.Location)
	assert.Zero(t, s.LandlordRating)
	assert.Zero(t, s.Sustainability)
	assert.Zero(t, s.Safety)
	// only the affordability term contributes: -0.5 * 0.3 / 5
	assert.InDelta(t, -0.03, engine.Combine(s), 1e-12)
}

func TestScoringFullCandidate(t *testing.T) {
	engine := newTestEngine(t)
	c := domain.Candidate{
		Property:     domain.Property{MonthlyRent: 900, Location: "Downtown", SustainabilityScore: floatPtr(0.8)},
		Landlord:     &domain.Landlord{Rating: floatPtr(4.5)},
		Neighborhood: &domain.Neighborhood{SafetyRating: floatPtr(7)},
	}

	s := engine.Signals(c, 1000, []string{"downtown"})
	assert.Equal(t, Signals{Affordability: 1, Location: 1, LandlordRating: 4.5, Sustainability: 0.8, Safety: 7}, s)

	want := (1*0.3 + 1*0.2 + 4.5*0.1 + 0.8*0.2 + 7*0.2) / 5
	assert.InDelta(t, want, engine.Score(c, 1000, []string{"downtown"}), 1e-12)
}

func TestScoringRentAtCeilingIsAffordable(t *testing.T) {
	engine := newTestEngine(t)
	c := domain.Candidate{Property: domain.Property{MonthlyRent: 1000}}
	assert.Equal(t, 1.0, engine.Signals(c, 1000, nil).Affordability)
}

func TestScoreIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	c := domain.Candidate{
		Property: domain.Property{MonthlyRent: 1234.5, Location: "uptown", SustainabilityScore: floatPtr(0.33)},
		Landlord: &domain.Landlord{Rating: floatPtr(3.7)},
	}
	first := engine.Score(c, 1100, []string{"uptown", "downtown"})
	for range 100 {
		assert.Equal(t, first, engine.Score(c, 1100, []string{"uptown", "downtown"}))
	}
}

func TestScoringWeightsAreUsedByName(t *testing.T) {
	engine, err := NewScoringEngine(domain.ScoreWeights{Safety: 1})
	require.NoError(t, err)

	c := domain.Candidate{
		Property:     domain.Property{MonthlyRent: 100, Location: "downtown", SustainabilityScore: floatPtr(1)},
		Landlord:     &domain.Landlord{Rating: floatPtr(5)},
		Neighborhood: &domain.Neighborhood{SafetyRating: floatPtr(10)},
	}
	assert.InDelta(t, 2.0, engine.Score(c, 1000, []string{"downtown"}), 1e-12)
}

func TestNewScoringEngineRejectsBadWeights(t *testing.T) {
	_, err := NewScoringEngine(domain.ScoreWeights{Affordability: 0.5})
	assert.ErrorIs(t, err, domain.ErrInvalidWeights)
}
