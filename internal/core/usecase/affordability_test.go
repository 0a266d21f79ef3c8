package usecase

import (
	"testing"

	"recommendation-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxAffordableRent(t *testing.T) {
	tests := []struct {
		name   string
		income float64
		cap    *float64
		want   float64
	}{
		{"no cap", 3000, nil, 1000},
		{"zero income", 0, nil, 0},
		{"cap below third", 3000, floatPtr(800), 800},
		{"cap equal to third", 3000, floatPtr(1000), 1000},
		{"cap above third", 3000, floatPtr(2000), 1000},
		{"zero cap is a cap", 3000, floatPtr(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxAffordableRent(tt.income, tt.cap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaxAffordableRentIdentities(t *testing.T) {
	for _, income := range []float64{0, 1, 299.99, 3000, 12345.67, 1e9} {
		third := income / 3

		got, err := MaxAffordableRent(income, nil)
		require.NoError(t, err)
		assert.Equal(t, third, got)

		for _, c := range []float64{0, third / 2, third} {
			got, err = MaxAffordableRent(income, floatPtr(c))
			require.NoError(t, err)
			assert.Equal(t, c, got)
		}

		got, err = MaxAffordableRent(income, floatPtr(third+1))
		require.NoError(t, err)
		assert.Equal(t, third, got)
	}
}

func TestMaxAffordableRentRejectsNegatives(t *testing.T) {
	_, err := MaxAffordableRent(-1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = MaxAffordableRent(3000, floatPtr(-0.01))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = MaxAffordableRent(-5, floatPtr(100))
	require.Error(t, err)
	assert.Equal(t, "household_income and max_rent must be non-negative", err.Error())
}
