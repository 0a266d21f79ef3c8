package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config holds the Fluent Bit forward-protocol settings.
type Config struct {
	Host      string // "127.0.0.1" or "fluent-bit" inside docker compose
	Port      int    // 24224 by default
	TagPrefix string // prefix for every tag posted by this service
	Timeout   time.Duration
	// Async buffers posts in the client so a slow collector never blocks a request.
	Async bool
}

// NewClient creates a Fluent Bit client.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluentd tag prefix is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	logger, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
		Timeout:    timeout,
		Async:      cfg.Async,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}

	// There is no ping in the forward protocol: connection errors surface on the first Post.
	return logger, nil
}
