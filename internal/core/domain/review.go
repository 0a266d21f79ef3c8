package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a tenant review of a property.
type Review struct {
	ID         uuid.UUID
	Comment    string
	Rating     *int
	PropertyID uuid.UUID
	UserID     uuid.UUID
	UserName   string
	Date       time.Time
}
