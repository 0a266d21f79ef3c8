package postgres

import (
	"context"
	"fmt"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) (*ReviewRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ReviewRepository{pool: pool}, nil
}

func (r *ReviewRepository) PropertyExists(ctx context.Context, propertyID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1)`, propertyID).Scan(&exists)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to check property existence", err, port.Fields{
			"component":   "ReviewRepository",
			"property_id": propertyID.String(),
		})
		return false, fmt.Errorf("failed to check property: %w", err)
	}
	return exists, nil
}

// ReviewsForProperty lists the reviews of a property with the reviewer name, newest first.
func (r *ReviewRepository) ReviewsForProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Review, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "ReviewRepository",
		"method":      "ReviewsForProperty",
		"property_id": propertyID.String(),
	})

	query := `
		SELECT r.id, r.comment, r.rating, r.property_id, r.user_id, COALESCE(u.name, ''), r.date
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.property_id = $1
		ORDER BY r.date DESC, r.id`

	rows, err := r.pool.Query(ctx, query, propertyID)
	if err != nil {
		repoLogger.Error("Failed to query reviews", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.Comment, &rev.Rating, &rev.PropertyID, &rev.UserID, &rev.UserName, &rev.Date); err != nil {
			repoLogger.Error("Failed to scan review row", err, nil)
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during reviews iteration: %w", err)
	}
	return reviews, nil
}
