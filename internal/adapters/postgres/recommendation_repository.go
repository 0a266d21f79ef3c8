package postgres

import (
	"context"
	"fmt"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RecommendationRepository struct {
	pool *pgxpool.Pool
}

func NewRecommendationRepository(pool *pgxpool.Pool) (*RecommendationRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &RecommendationRepository{pool: pool}, nil
}

// Insert appends a recommendation. There is no uniqueness on (user, property).
func (r *RecommendationRepository) Insert(ctx context.Context, rec *domain.Recommendation) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "RecommendationRepository",
		"method":      "Insert",
		"property_id": rec.PropertyID.String(),
	})

	query := `INSERT INTO recommendations (id, user_id, property_id, score, date_recommended) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, rec.ID, rec.UserID, rec.PropertyID, rec.Score, rec.DateRecommended)
	if err != nil {
		repoLogger.Error("Failed to insert recommendation", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}

	repoLogger.Debug("Recommendation inserted.", nil)
	return nil
}
