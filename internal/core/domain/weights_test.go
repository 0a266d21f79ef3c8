package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScoreWeights(t *testing.T) {
	require.NoError(t, DefaultScoreWeights.Validate())
	assert.InDelta(t, 1.0, DefaultScoreWeights.Sum(), 1e-12)
	assert.Equal(t, 0.3, DefaultScoreWeights.Affordability)
	assert.Equal(t, 0.1, DefaultScoreWeights.LandlordRating)
}

func TestScoreWeightsValidate(t *testing.T) {
	w := DefaultScoreWeights
	w.Safety = 0.3
	assert.ErrorIs(t, w.Validate(), ErrInvalidWeights)

	w = DefaultScoreWeights
	w.Location = -0.1
	w.Safety = 0.5
	assert.ErrorIs(t, w.Validate(), ErrInvalidWeights)
}
