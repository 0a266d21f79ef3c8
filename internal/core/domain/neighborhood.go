package domain

import "github.com/google/uuid"

// Neighborhood is looked up by Name, which properties reference through Location.
type Neighborhood struct {
	ID               uuid.UUID
	Name             string
	SafetyRating     *float64
	CrimeRate        *float64
	WalkabilityScore *float64
	AverageRent      *float64
	Amenities        []string
}
