package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int { return &v }

// memoryStore is an in-memory catalog. It does not apply the filter unless
// filterRows is set, so the retriever's own checks can be exercised.
type memoryStore struct {
	mu            sync.Mutex
	properties    []domain.Property
	landlords     []domain.Landlord
	neighborhoods []domain.Neighborhood
	filterRows    bool

	propertiesErr   error
	landlordErr     error
	neighborhoodErr error
	delay           time.Duration

	landlordCalls     map[uuid.UUID]int
	neighborhoodCalls map[string]int
}

func (s *memoryStore) FindMatchingProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.propertiesErr != nil {
		return nil, s.propertiesErr
	}
	out := make([]domain.Property, 0, len(s.properties))
	for _, p := range s.properties {
		if s.filterRows && !filter.Matches(&p) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *memoryStore) FindLandlord(_ context.Context, landlordID uuid.UUID) (*domain.Landlord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.landlordCalls == nil {
		s.landlordCalls = map[uuid.UUID]int{}
	}
	s.landlordCalls[landlordID]++
	if s.landlordErr != nil {
		return nil, s.landlordErr
	}
	for i := range s.landlords {
		if s.landlords[i].LandlordID == landlordID {
			l := s.landlords[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) FindNeighborhoodByName(_ context.Context, name string) (*domain.Neighborhood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.neighborhoodCalls == nil {
		s.neighborhoodCalls = map[string]int{}
	}
	s.neighborhoodCalls[name]++
	if s.neighborhoodErr != nil {
		return nil, s.neighborhoodErr
	}
	for i := range s.neighborhoods {
		if s.neighborhoods[i].Name == name {
			n := s.neighborhoods[i]
			return &n, nil
		}
	}
	return nil, nil
}

// recordingRepo stores inserted recommendations and fails for properties in failFor.
type recordingRepo struct {
	mu       sync.Mutex
	inserted []domain.Recommendation
	failFor  map[uuid.UUID]bool
	ctxErrs  []error
}

var errInsert = errors.New("insert failed")

func (r *recordingRepo) Insert(ctx context.Context, rec *domain.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	if r.failFor[rec.PropertyID] {
		return errInsert
	}
	r.inserted = append(r.inserted, *rec)
	return nil
}

type recordingEvents struct {
	mu        sync.Mutex
	published []uuid.UUID
	err       error
}

func (e *recordingEvents) PublishRecommendationCreated(_ context.Context, rec *domain.Recommendation) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.published = append(e.published, rec.PropertyID)
	return nil
}

type recordingMetrics struct {
	mu          sync.Mutex
	outcomes    []string
	persistOK   int
	persistFail int
	scores      int
}

func (m *recordingMetrics) RecordRequest(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *recordingMetrics) RecordCandidates(int) {}

func (m *recordingMetrics) ObserveScore(float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores++
}

func (m *recordingMetrics) RecordPersistence(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.persistOK++
	} else {
		m.persistFail++
	}
}

type memoryUsers struct {
	users []*domain.User
	err   error
}

func (u *memoryUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u.err != nil {
		return nil, u.err
	}
	for _, user := range u.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (u *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if u.err != nil {
		return nil, u.err
	}
	for _, user := range u.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

// stubTokens treats the user id string as the token.
type stubTokens struct{}

var errBadToken = errors.New("bad token")

func (stubTokens) GenerateToken(_ context.Context, user *domain.User, _ time.Duration) (string, error) {
	return user.ID.String(), nil
}

func (stubTokens) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, errBadToken
	}
	return &domain.Claims{UserID: id}, nil
}
