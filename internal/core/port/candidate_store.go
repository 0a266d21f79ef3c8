package port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

// CandidateStorePort is the read side of the property catalog.
// The lookups return (nil, nil) when nothing matches.
type CandidateStorePort interface {
	FindMatchingProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	FindLandlord(ctx context.Context, landlordID uuid.UUID) (*domain.Landlord, error)
	FindNeighborhoodByName(ctx context.Context, name string) (*domain.Neighborhood, error)
}
