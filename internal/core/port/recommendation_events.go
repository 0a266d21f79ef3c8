package port

import (
	"context"

	"recommendation-service/internal/core/domain"
)

// RecommendationEventsPort announces stored recommendations to other services.
type RecommendationEventsPort interface {
	PublishRecommendationCreated(ctx context.Context, rec *domain.Recommendation) error
}
