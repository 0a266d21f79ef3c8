package port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

type ReviewRepositoryPort interface {
	PropertyExists(ctx context.Context, propertyID uuid.UUID) (bool, error)
	ReviewsForProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Review, error)
}
