package domain

import (
	"fmt"
	"math"
)

// SignalCount is the number of scoring signals. The final score divides the
// weighted sum by it.
const SignalCount = 5

// ScoreWeights holds one weight per scoring signal.
type ScoreWeights struct {
	Affordability  float64
	Location       float64
	LandlordRating float64
	Sustainability float64
	Safety         float64
}

// DefaultScoreWeights are the production weights.
var DefaultScoreWeights = ScoreWeights{
	Affordability:  0.3,
	Location:       0.2,
	LandlordRating: 0.1,
	Sustainability: 0.2,
	Safety:         0.2,
}

func (w ScoreWeights) Sum() float64 {
	return w.Affordability + w.Location + w.LandlordRating + w.Sustainability + w.Safety
}

// Validate checks that no weight is negative and that they sum to 1.
func (w ScoreWeights) Validate() error {
	for name, v := range map[string]float64{
		"affordability":   w.Affordability,
		"location":        w.Location,
		"landlord_rating": w.LandlordRating,
		"sustainability":  w.Sustainability,
		"safety":          w.Safety,
	} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s weight is %v", ErrInvalidWeights, name, v)
		}
	}
	if math.Abs(w.Sum()-1) > 1e-9 {
		return fmt.Errorf("%w: got %v", ErrInvalidWeights, w.Sum())
	}
	return nil
}
