package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	routingKey string
	msg        amqp.Publishing
	deadline   bool
	err        error
}

func (p *capturePublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.routingKey = routingKey
	p.msg = msg
	_, p.deadline = ctx.Deadline()
	return p.err
}

func TestPublishRecommendationCreated(t *testing.T) {
	pub := &capturePublisher{}
	adapter, err := NewRecommendationEventsAdapter(pub, "recommendation.created", time.Second)
	require.NoError(t, err)

	rec := domain.NewRecommendation(uuid.New(), uuid.New(), 0.17)
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-123")
	require.NoError(t, adapter.PublishRecommendationCreated(ctx, rec))

	assert.Equal(t, "recommendation.created", pub.routingKey)
	assert.True(t, pub.deadline)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.Equal(t, rec.ID.String(), pub.msg.MessageId)
	assert.Equal(t, "trace-123", pub.msg.Headers["x-trace-id"])
	assert.Equal(t, "1.0.0", pub.msg.Headers["x-event-version"])

	var dto RecommendationCreatedDTO
	require.NoError(t, json.Unmarshal(pub.msg.Body, &dto))
	assert.Equal(t, rec.ID, dto.RecommendationID)
	assert.Equal(t, rec.UserID, dto.UserID)
	assert.Equal(t, rec.PropertyID, dto.PropertyID)
	assert.Equal(t, 0.17, dto.Score)
}

func TestPublishRecommendationCreatedErrors(t *testing.T) {
	boom := errors.New("channel closed")
	adapter, err := NewRecommendationEventsAdapter(&capturePublisher{err: boom}, "rk", 0)
	require.NoError(t, err)

	err = adapter.PublishRecommendationCreated(context.Background(), domain.NewRecommendation(uuid.New(), uuid.New(), 0.1))
	assert.ErrorIs(t, err, boom)

	err = adapter.PublishRecommendationCreated(context.Background(), domain.NewRecommendation(uuid.New(), uuid.New(), math.Inf(-1)))
	assert.Error(t, err)
}

func TestNewRecommendationEventsAdapterValidates(t *testing.T) {
	_, err := NewRecommendationEventsAdapter(nil, "rk", 0)
	assert.Error(t, err)

	_, err = NewRecommendationEventsAdapter(&capturePublisher{}, "", 0)
	assert.Error(t, err)
}
