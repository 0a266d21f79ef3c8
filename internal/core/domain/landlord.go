package domain

import "github.com/google/uuid"

// Landlord is the landlord profile. LandlordID references the landlord's user
// account and is the key properties point to.
type Landlord struct {
	ID             uuid.UUID
	LandlordID     uuid.UUID
	ProfileDetails []string
	Rating         *float64
}
