package port

// Request outcomes reported to RecommendationMetricsPort.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeRetrievalFailed = "retrieval_failure"
)

// RecommendationMetricsPort records recommendation pipeline metrics.
type RecommendationMetricsPort interface {
	RecordRequest(outcome string)
	RecordCandidates(n int)
	ObserveScore(score float64)
	RecordPersistence(ok bool)
}
