package usecase

import (
	"context"
	"fmt"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
)

type GetPropertyReviewsUseCase struct {
	reviews port.ReviewRepositoryPort
}

func NewGetPropertyReviewsUseCase(reviews port.ReviewRepositoryPort) *GetPropertyReviewsUseCase {
	return &GetPropertyReviewsUseCase{reviews: reviews}
}

func (uc *GetPropertyReviewsUseCase) Execute(ctx context.Context, propertyID uuid.UUID) ([]domain.Review, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "GetPropertyReviews",
		"property_id": propertyID.String(),
	})

	exists, err := uc.reviews.PropertyExists(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Repository failed to check property", err, nil)
		return nil, fmt.Errorf("check property: %w", err)
	}
	if !exists {
		return nil, domain.ErrPropertyNotFound
	}

	reviews, err := uc.reviews.ReviewsForProperty(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Repository failed to list reviews", err, nil)
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	ucLogger.Info("Reviews fetched", port.Fields{"count": len(reviews)})
	return reviews, nil
}
