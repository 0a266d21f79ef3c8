package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gobreaker "github.com/sony/gobreaker/v2"
)

// RecommendationMetrics implements port.RecommendationMetricsPort and also
// carries the HTTP and circuit breaker collectors of the service.
type RecommendationMetrics struct {
	gatherer prometheus.Gatherer

	requests       *prometheus.CounterVec
	candidates     prometheus.Histogram
	scores         prometheus.Histogram
	persisted      *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	breakerState   *prometheus.GaugeVec
	breakerChanges *prometheus.CounterVec
}

// NewRecommendationMetrics registers the collectors on reg.
func NewRecommendationMetrics(reg *prometheus.Registry) *RecommendationMetrics {
	factory := promauto.With(reg)

	return &RecommendationMetrics{
		gatherer: reg,

		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recommendation_requests_total",
				Help: "Recommendation requests by outcome",
			},
			[]string{"outcome"},
		),
		candidates: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recommendation_candidates",
				Help:    "Candidates retrieved per request",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
			},
		),
		scores: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recommendation_score",
				Help:    "Distribution of computed recommendation scores",
				Buckets: prometheus.LinearBuckets(-0.5, 0.1, 16),
			},
		),
		persisted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recommendation_persist_total",
				Help: "Recommendation writes by result",
			},
			[]string{"result"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		breakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
		breakerChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_transitions_total",
				Help: "Circuit breaker state transitions",
			},
			[]string{"name", "from", "to"},
		),
	}
}

func (m *RecommendationMetrics) RecordRequest(outcome string) {
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *RecommendationMetrics) RecordCandidates(n int) {
	m.candidates.Observe(float64(n))
}

func (m *RecommendationMetrics) ObserveScore(score float64) {
	m.scores.Observe(score)
}

func (m *RecommendationMetrics) RecordPersistence(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.persisted.WithLabelValues(result).Inc()
}

// ObserveHTTP records one served request. route is the chi route pattern.
func (m *RecommendationMetrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// BreakerStateChanged is passed to the breaker as its OnStateChange hook.
func (m *RecommendationMetrics) BreakerStateChanged(name string, from, to gobreaker.State) {
	m.breakerState.WithLabelValues(name).Set(breakerStateValue(to))
	m.breakerChanges.WithLabelValues(name, from.String(), to.String()).Inc()
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *RecommendationMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
