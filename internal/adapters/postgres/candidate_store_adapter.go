package postgres

import (
	"context"
	"errors"
	"fmt"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CandidateStoreAdapter is the PostgreSQL read side of the catalog.
type CandidateStoreAdapter struct {
	pool *pgxpool.Pool
}

func NewCandidateStoreAdapter(pool *pgxpool.Pool) (*CandidateStoreAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &CandidateStoreAdapter{pool: pool}, nil
}

const selectProperties = `
	SELECT p.id, p.address, p.type, p.size, p.bedrooms, p.bathrooms, p.monthly_rent,
	       p.amenities, p.location, p.sustainability_score, p.landlord_id, p.availability_status
	FROM properties p`

// FindMatchingProperties returns the properties matching filter ordered by id.
func (a *CandidateStoreAdapter) FindMatchingProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CandidateStoreAdapter",
		"method":    "FindMatchingProperties",
	})

	whereClause, args := applyPropertyFilter(filter)
	query := fmt.Sprintf("%s %s ORDER BY p.id", selectProperties, whereClause)

	repoLogger.Debug("Executing query to find matching properties.", port.Fields{"args_count": len(args)})
	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query properties", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	properties := make([]domain.Property, 0)
	for rows.Next() {
		var (
			p      domain.Property
			status string
		)
		if err := rows.Scan(
			&p.ID,
			&p.Address,
			&p.Type,
			&p.Size,
			&p.Bedrooms,
			&p.Bathrooms,
			&p.MonthlyRent,
			&p.Amenities,
			&p.Location,
			&p.SustainabilityScore,
			&p.LandlordID,
			&status,
		); err != nil {
			repoLogger.Error("Failed to scan property row", err, nil)
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		p.AvailabilityStatus = domain.AvailabilityStatus(status)
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during properties iteration", err, nil)
		return nil, fmt.Errorf("error during properties iteration: %w", err)
	}

	repoLogger.Debug("Matching properties fetched.", port.Fields{"count": len(properties)})
	return properties, nil
}

// FindLandlord returns the first landlord profile of the given user, or (nil, nil).
func (a *CandidateStoreAdapter) FindLandlord(ctx context.Context, landlordID uuid.UUID) (*domain.Landlord, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "CandidateStoreAdapter",
		"method":      "FindLandlord",
		"landlord_id": landlordID.String(),
	})

	query := `SELECT id, landlord_id, profile_details, rating FROM landlords WHERE landlord_id = $1 ORDER BY id LIMIT 1`

	var l domain.Landlord
	err := a.pool.QueryRow(ctx, query, landlordID).Scan(&l.ID, &l.LandlordID, &l.ProfileDetails, &l.Rating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Landlord not found.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find landlord", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find landlord: %w", err)
	}
	return &l, nil
}

// FindNeighborhoodByName returns the first neighborhood with that name, or (nil, nil).
func (a *CandidateStoreAdapter) FindNeighborhoodByName(ctx context.Context, name string) (*domain.Neighborhood, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":    "CandidateStoreAdapter",
		"method":       "FindNeighborhoodByName",
		"neighborhood": name,
	})

	query := `
		SELECT id, name, safety_rating, crime_rate, walkability_score, average_rent, amenities
		FROM neighborhoods WHERE name = $1 ORDER BY id LIMIT 1`

	var n domain.Neighborhood
	err := a.pool.QueryRow(ctx, query, name).Scan(
		&n.ID,
		&n.Name,
		&n.SafetyRating,
		&n.CrimeRate,
		&n.WalkabilityScore,
		&n.AverageRent,
		&n.Amenities,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Neighborhood not found.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find neighborhood", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find neighborhood: %w", err)
	}
	return &n, nil
}
