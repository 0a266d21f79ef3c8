package usecases_port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetRecommendationsUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, req domain.RecommendationRequest) (*domain.RecommendationResult, error)
}
