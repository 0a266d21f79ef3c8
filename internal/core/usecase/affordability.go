package usecase

import (
	"math"

	"recommendation-service/internal/core/domain"
)

// incomeShare is the part of the household income that may go to rent.
const incomeShare = 3.0

// MaxAffordableRent returns the rent ceiling for a household: a third of the
// income, lowered to rentCap when one is given. A rentCap of 0 is a real cap.
func MaxAffordableRent(income float64, rentCap *float64) (float64, error) {
	if income < 0 || math.IsNaN(income) {
		return 0, domain.ErrInvalidArgument
	}
	ceiling := income / incomeShare
	if rentCap == nil {
		return ceiling, nil
	}
	if *rentCap < 0 || math.IsNaN(*rentCap) {
		return 0, domain.ErrInvalidArgument
	}
	return math.Min(*rentCap, ceiling), nil
}
