package domain

import (
	"slices"

	"github.com/google/uuid"
)

type AvailabilityStatus string

const (
	StatusAvailable        AvailabilityStatus = "Available"
	StatusRented           AvailabilityStatus = "Rented"
	StatusUnderMaintenance AvailabilityStatus = "Under Maintenance"
)

// Property is a rental listing of the catalog.
type Property struct {
	ID                  uuid.UUID
	Address             string
	Type                string
	Size                float64
	Bedrooms            int
	Bathrooms           int
	MonthlyRent         float64
	Amenities           []string
	Location            string
	SustainabilityScore *float64
	LandlordID          uuid.UUID
	AvailabilityStatus  AvailabilityStatus
}

// PropertyFilter is the match predicate of the candidate retriever.
// Nil slices and pointers mean the constraint is absent.
type PropertyFilter struct {
	MaxRent     float64
	Locations   []string
	Types       []string
	MinBedrooms *int
}

// Matches reports whether p satisfies every present constraint.
func (f PropertyFilter) Matches(p *Property) bool {
	if p == nil {
		return false
	}
	if p.MonthlyRent > f.MaxRent {
		return false
	}
	if !slices.Contains(f.Locations, p.Location) {
		return false
	}
	if f.Types != nil && !slices.Contains(f.Types, p.Type) {
		return false
	}
	if f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms {
		return false
	}
	return true
}
