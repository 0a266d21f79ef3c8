package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
)

// CandidateRetriever matches properties and joins each one with exactly one
// landlord and exactly one neighborhood.
type CandidateRetriever struct {
	store port.CandidateStorePort
}

func NewCandidateRetriever(store port.CandidateStorePort) *CandidateRetriever {
	return &CandidateRetriever{store: store}
}

// Retrieve returns one candidate per matching property that has both a
// landlord and a neighborhood, ordered by sustainability, landlord rating and
// neighborhood safety, all descending.
func (r *CandidateRetriever) Retrieve(ctx context.Context, filter domain.PropertyFilter) ([]domain.Candidate, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "RetrieveCandidates",
	})

	if len(filter.Locations) == 0 {
		return nil, fmt.Errorf("%w: preferred locations must be a non-empty list", domain.ErrValidationFailure)
	}

	properties, err := r.store.FindMatchingProperties(ctx, filter)
	if err != nil {
		logger.Error("Store failed to find matching properties", err, nil)
		return nil, fmt.Errorf("%w: find matching properties: %w", domain.ErrRetrievalFailure, err)
	}

	seen := make(map[uuid.UUID]struct{}, len(properties))
	matched := make([]domain.Property, 0, len(properties))
	for _, p := range properties {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		if !filter.Matches(&p) {
			logger.Warn("Store returned a property outside the filter, dropping it", port.Fields{"property_id": p.ID.String()})
			continue
		}
		matched = append(matched, p)
	}

	landlords := make(map[uuid.UUID]*domain.Landlord)
	neighborhoods := make(map[string]*domain.Neighborhood)
	candidates := make([]domain.Candidate, 0, len(matched))

	for _, p := range matched {
		landlord, ok := landlords[p.LandlordID]
		if !ok {
			landlord, err = r.store.FindLandlord(ctx, p.LandlordID)
			if err != nil {
				logger.Error("Store failed to find landlord", err, port.Fields{"landlord_id": p.LandlordID.String()})
				return nil, fmt.Errorf("%w: find landlord %s: %w", domain.ErrRetrievalFailure, p.LandlordID, err)
			}
			landlords[p.LandlordID] = landlord
		}

		neighborhood, ok := neighborhoods[p.Location]
		if !ok {
			neighborhood, err = r.store.FindNeighborhoodByName(ctx, p.Location)
			if err != nil {
				logger.Error("Store failed to find neighborhood", err, port.Fields{"neighborhood": p.Location})
				return nil, fmt.Errorf("%w: find neighborhood %q: %w", domain.ErrRetrievalFailure, p.Location, err)
			}
			neighborhoods[p.Location] = neighborhood
		}

		// both joins are inner: a property missing either side is not a candidate
		if landlord == nil || neighborhood == nil {
			logger.Debug("Dropping property without landlord or neighborhood", port.Fields{
				"property_id":        p.ID.String(),
				"landlord_found":     landlord != nil,
				"neighborhood_found": neighborhood != nil,
			})
			continue
		}

		candidates = append(candidates, domain.Candidate{
			Property:     p,
			Landlord:     landlord,
			Neighborhood: neighborhood,
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRetrievalFailure, err)
	}

	SortCandidates(candidates)

	logger.Debug("Candidates retrieved", port.Fields{
		"properties": len(properties),
		"candidates": len(candidates),
	})
	return candidates, nil
}

// SortCandidates orders candidates by (sustainability, landlord rating,
// neighborhood safety) descending. A missing value sorts after every number
// and ties keep their input order.
func SortCandidates(candidates []domain.Candidate) {
	slices.SortStableFunc(candidates, func(a, b domain.Candidate) int {
		return cmp.Or(
			compareDescNilLast(a.Property.SustainabilityScore, b.Property.SustainabilityScore),
			compareDescNilLast(landlordRating(a), landlordRating(b)),
			compareDescNilLast(neighborhoodSafety(a), neighborhoodSafety(b)),
		)
	})
}

func compareDescNilLast(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*b, *a)
}

func landlordRating(c domain.Candidate) *float64 {
	if c.Landlord == nil {
		return nil
	}
	return c.Landlord.Rating
}

func neighborhoodSafety(c domain.Candidate) *float64 {
	if c.Neighborhood == nil {
		return nil
	}
	return c.Neighborhood.SafetyRating
}
