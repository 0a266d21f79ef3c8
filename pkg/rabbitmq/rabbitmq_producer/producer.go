package rabbitmq_producer

import (
	"context"
	"fmt"
	"sync"

	"recommendation-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig configures a producer bound to one exchange.
type PublisherConfig struct {
	ExchangeName       string // empty string means the default exchange
	ExchangeType       string // direct, fanout, topic, headers
	DurableExchange    bool
	AutoDeleteExchange bool
	InternalExchange   bool
	ExchangeArgs       amqp.Table

	// When false the exchange is expected to exist already.
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

func (c PublisherConfig) validate() error {
	if c.DeclareExchangeIfMissing && c.ExchangeName == "" && c.ExchangeType != "" {
		return fmt.Errorf("producer: exchange name is required if ExchangeType is specified and DeclareExchangeIfMissing is true")
	}
	if c.DeclareExchangeIfMissing && c.ExchangeType == "" && c.ExchangeName != "" {
		return fmt.Errorf("producer: exchange type is required if ExchangeName is specified and DeclareExchangeIfMissing is true")
	}
	return nil
}

// Publisher publishes messages to a single exchange over a channel taken from
// the ConnectionManager. The channel is guarded by a mutex because requests
// publish from several goroutines at once.
type Publisher struct {
	config      PublisherConfig
	connManager *rabbitmq_common.ConnectionManager

	mu         sync.Mutex
	connection *amqp.Connection
	channel    *amqp.Channel

	Logger rabbitmq_common.Logger
}

// NewPublisher opens a channel and declares the exchange when asked to.
func NewPublisher(cfg PublisherConfig, connManager *rabbitmq_common.ConnectionManager) (*Publisher, error) {
	if connManager == nil {
		return nil, fmt.Errorf("producer: connection manager cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	p := &Publisher{
		config:      cfg,
		connManager: connManager,
		Logger:      logger,
	}

	if err := p.openChannel(); err != nil {
		return nil, err
	}

	p.Logger.Debug("Producer: connected and channel opened", "exchange", cfg.ExchangeName)
	return p, nil
}

// openChannel must be called with p.mu held or before the publisher is shared.
func (p *Publisher) openChannel() error {
	conn, ch, err := p.connManager.GetChannel()
	if err != nil {
		return fmt.Errorf("producer: failed to get channel from manager: %w", err)
	}

	if p.config.DeclareExchangeIfMissing {
		p.Logger.Debug("Declaring exchange",
			"name", p.config.ExchangeName,
			"type", p.config.ExchangeType,
		)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			p.config.AutoDeleteExchange,
			p.config.InternalExchange,
			false, // no-wait
			p.config.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.connection = conn
	p.channel = ch
	return nil
}

// Publish sends msg with the given routing key. A closed channel is reopened once.
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() || p.connection == nil || p.connection.IsClosed() {
		p.Logger.Warn("Producer: channel is closed, reopening")
		if err := p.openChannel(); err != nil {
			return fmt.Errorf("producer: not connected: %w", err)
		}
	}

	err := p.channel.PublishWithContext(
		ctx,
		p.config.ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

// Close closes the producer channel. The shared connection is owned by the manager.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Logger.Debug("Producer: Closing...")
	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.Logger.Error(err, "Error closing channel")
			firstErr = err
		}
		p.channel = nil
	}
	p.Logger.Info("Producer closed.")
	return firstErr
}
