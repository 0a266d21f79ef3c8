package usecases_port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetPropertyReviewsUseCasePort interface {
	Execute(ctx context.Context, propertyID uuid.UUID) ([]domain.Review, error)
}
