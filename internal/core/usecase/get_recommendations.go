package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// GetRecommendationsConfig bounds one recommendation request.
type GetRecommendationsConfig struct {
	Timeout            time.Duration // retrieval deadline
	PersistTimeout     time.Duration // deadline for all writes of a request
	PersistConcurrency int
}

const (
	defaultRecommendationTimeout = 10 * time.Second
	defaultPersistTimeout        = 5 * time.Second
	defaultPersistConcurrency    = 8
)

type GetRecommendationsUseCase struct {
	retriever *CandidateRetriever
	scorer    *ScoringEngine
	repo      port.RecommendationRepositoryPort
	events    port.RecommendationEventsPort
	metrics   port.RecommendationMetricsPort
	cfg       GetRecommendationsConfig
}

// NewGetRecommendationsUseCase builds the orchestrator. events and metrics may be nil.
func NewGetRecommendationsUseCase(
	retriever *CandidateRetriever,
	scorer *ScoringEngine,
	repo port.RecommendationRepositoryPort,
	events port.RecommendationEventsPort,
	metrics port.RecommendationMetricsPort,
	cfg GetRecommendationsConfig,
) *GetRecommendationsUseCase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRecommendationTimeout
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = defaultPersistTimeout
	}
	if cfg.PersistConcurrency <= 0 {
		cfg.PersistConcurrency = defaultPersistConcurrency
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &GetRecommendationsUseCase{
		retriever: retriever,
		scorer:    scorer,
		repo:      repo,
		events:    events,
		metrics:   metrics,
		cfg:       cfg,
	}
}

// Execute computes the rent ceiling, retrieves and scores candidates and
// stores one recommendation per candidate. A failed write does not fail the
// request: the candidate is returned with Persisted false.
func (uc *GetRecommendationsUseCase) Execute(ctx context.Context, userID uuid.UUID, req domain.RecommendationRequest) (*domain.RecommendationResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetRecommendations",
		"user_id":  userID.String(),
	})
	ucLogger.Info("Use case started", port.Fields{
		"locations": req.PreferredLocations,
		"types":     req.PropertyTypes,
	})

	maxRent, err := MaxAffordableRent(req.HouseholdIncome, req.MaxRent)
	if err != nil {
		ucLogger.Warn("Affordability rejected the request", port.Fields{"error": err.Error()})
		uc.metrics.RecordRequest(port.OutcomeInvalidArgument)
		return nil, err
	}

	retrieveCtx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	candidates, err := uc.retriever.Retrieve(retrieveCtx, domain.PropertyFilter{
		MaxRent:     maxRent,
		Locations:   req.PreferredLocations,
		Types:       req.PropertyTypes,
		MinBedrooms: req.MinBedrooms,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidationFailure) {
			uc.metrics.RecordRequest(port.OutcomeInvalidArgument)
			return nil, err
		}
		ucLogger.Error("Candidate retrieval failed", err, nil)
		uc.metrics.RecordRequest(port.OutcomeRetrievalFailed)
		if !errors.Is(err, domain.ErrRetrievalFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrRetrievalFailure, err)
		}
		return nil, err
	}
	uc.metrics.RecordCandidates(len(candidates))

	results := uc.scoreAndPersist(ctx, ucLogger, userID, maxRent, req.PreferredLocations, candidates)

	persisted := 0
	for _, r := range results {
		if r.Persisted {
			persisted++
		}
	}

	uc.metrics.RecordRequest(port.OutcomeSuccess)
	ucLogger.Info("Use case finished", port.Fields{
		"max_affordable_rent": maxRent,
		"candidates":          len(results),
		"persisted":           persisted,
	})

	return &domain.RecommendationResult{
		UserID:          userID,
		MaxAffordable:   maxRent,
		Recommendations: results,
		PersistedCount:  persisted,
	}, nil
}

// scoreAndPersist fans out over candidates. Each goroutine owns results[i].
func (uc *GetRecommendationsUseCase) scoreAndPersist(
	ctx context.Context,
	logger port.LoggerPort,
	userID uuid.UUID,
	maxRent float64,
	locations []string,
	candidates []domain.Candidate,
) []domain.ScoredCandidate {
	results := make([]domain.ScoredCandidate, len(candidates))
	if len(candidates) == 0 {
		return results
	}

	// writes outlive a disconnected client
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.PersistTimeout)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(uc.cfg.PersistConcurrency)

	for i, c := range candidates {
		g.Go(func() error {
			signals := uc.scorer.Signals(c, maxRent, locations)
			score := uc.scorer.Combine(signals)
			uc.metrics.ObserveScore(score)

			results[i] = domain.ScoredCandidate{Candidate: c, Score: score}
			candLogger := logger.WithFields(port.Fields{"property_id": c.Property.ID.String()})
			candLogger.Debug("Candidate scored", port.Fields{
				"score":           score,
				"affordability":   signals.Affordability,
				"location":        signals.Location,
				"landlord_rating": signals.LandlordRating,
				"sustainability":  signals.Sustainability,
				"safety":          signals.Safety,
			})

			rec := domain.NewRecommendation(userID, c.Property.ID, score)
			if err := uc.repo.Insert(persistCtx, rec); err != nil {
				candLogger.Error("Failed to persist recommendation", err, nil)
				uc.metrics.RecordPersistence(false)
				results[i].Err = fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
				return nil
			}
			uc.metrics.RecordPersistence(true)
			results[i].Persisted = true

			if uc.events != nil {
				if err := uc.events.PublishRecommendationCreated(persistCtx, rec); err != nil {
					candLogger.Warn("Failed to publish recommendation event", port.Fields{"error": err.Error()})
				}
			}
			return nil
		})
	}
	_ = g.Wait() // goroutines never return an error

	return results
}

type noopMetrics struct{}

func (noopMetrics) RecordRequest(string) {}
func (noopMetrics) RecordCandidates(int) {}
func (noopMetrics) ObserveScore(float64) {}
func (noopMetrics) RecordPersistence(bool) {}
