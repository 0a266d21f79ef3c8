package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Config configures the catalog circuit breaker.
type Config struct {
	Name string
	// MaxFailures consecutive failures open the circuit.
	MaxFailures uint32
	// OpenTimeout is how long the circuit stays open before letting a trial request through.
	OpenTimeout time.Duration
	// OnStateChange is optional.
	OnStateChange func(name string, from, to gobreaker.State)
}

// CandidateStoreBreaker wraps a CandidateStorePort with a circuit breaker.
// While the circuit is open every call fails with gobreaker.ErrOpenState.
type CandidateStoreBreaker struct {
	next   port.CandidateStorePort
	cb     *gobreaker.CircuitBreaker[any]
	logger port.LoggerPort
}

func NewCandidateStoreBreaker(next port.CandidateStorePort, cfg Config, logger port.LoggerPort) (*CandidateStoreBreaker, error) {
	if next == nil {
		return nil, fmt.Errorf("candidate store cannot be nil")
	}
	if cfg.Name == "" {
		cfg.Name = "candidate-store"
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	b := &CandidateStoreBreaker{next: next, logger: logger}
	b.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// a caller giving up says nothing about the database; a deadline hit
		// while waiting on it does
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if b.logger != nil {
				b.logger.Warn("Circuit breaker state changed", port.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				})
			}
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(name, from, to)
			}
		},
	})
	return b, nil
}

// State reports the current breaker state.
func (b *CandidateStoreBreaker) State() gobreaker.State {
	return b.cb.State()
}

func (b *CandidateStoreBreaker) FindMatchingProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return b.next.FindMatchingProperties(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	properties, _ := res.([]domain.Property)
	return properties, nil
}

func (b *CandidateStoreBreaker) FindLandlord(ctx context.Context, landlordID uuid.UUID) (*domain.Landlord, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return b.next.FindLandlord(ctx, landlordID)
	})
	if err != nil {
		return nil, err
	}
	landlord, _ := res.(*domain.Landlord)
	return landlord, nil
}

func (b *CandidateStoreBreaker) FindNeighborhoodByName(ctx context.Context, name string) (*domain.Neighborhood, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return b.next.FindNeighborhoodByName(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	neighborhood, _ := res.(*domain.Neighborhood)
	return neighborhood, nil
}
