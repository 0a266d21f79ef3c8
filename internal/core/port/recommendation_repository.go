package port

import (
	"context"

	"recommendation-service/internal/core/domain"
)

// RecommendationRepositoryPort appends recommendation records.
type RecommendationRepositoryPort interface {
	Insert(ctx context.Context, rec *domain.Recommendation) error
}
