package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	recommendationCreatedEvent   = "RecommendationCreated"
	recommendationCreatedVersion = "1.0.0"
	defaultPublishTimeout        = 5 * time.Second
)

// RecommendationCreatedDTO is the body of a recommendation.created message.
type RecommendationCreatedDTO struct {
	RecommendationID uuid.UUID `json:"recommendation_id"`
	UserID           uuid.UUID `json:"user_id"`
	PropertyID       uuid.UUID `json:"property_id"`
	Score            float64   `json:"score"`
	DateRecommended  time.Time `json:"date_recommended"`
}

// messagePublisher is satisfied by *rabbitmq_producer.Publisher.
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// RecommendationEventsAdapter implements RecommendationEventsPort over RabbitMQ.
type RecommendationEventsAdapter struct {
	producer       messagePublisher
	routingKey     string
	publishTimeout time.Duration
}

func NewRecommendationEventsAdapter(producer messagePublisher, routingKey string, publishTimeout time.Duration) (*RecommendationEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	if publishTimeout <= 0 {
		publishTimeout = defaultPublishTimeout
	}
	return &RecommendationEventsAdapter{
		producer:       producer,
		routingKey:     routingKey,
		publishTimeout: publishTimeout,
	}, nil
}

func (a *RecommendationEventsAdapter) PublishRecommendationCreated(ctx context.Context, rec *domain.Recommendation) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":         "RecommendationEventsAdapter",
		"routing_key":       a.routingKey,
		"recommendation_id": rec.ID.String(),
	})

	body, err := json.Marshal(RecommendationCreatedDTO{
		RecommendationID: rec.ID,
		UserID:           rec.UserID,
		PropertyID:       rec.PropertyID,
		Score:            rec.Score,
		DateRecommended:  rec.DateRecommended,
	})
	if err != nil {
		// json rejects NaN and Inf scores
		return fmt.Errorf("rabbitmq adapter: failed to marshal recommendation %s: %w", rec.ID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Type:         recommendationCreatedEvent,
		MessageId:    rec.ID.String(),
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"x-event-type":    recommendationCreatedEvent,
			"x-event-version": recommendationCreatedVersion,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, a.publishTimeout)
	defer cancel()

	adapterLogger.Debug("Publishing recommendation event", nil)
	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish recommendation event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish recommendation %s: %w", rec.ID, err)
	}
	return nil
}
