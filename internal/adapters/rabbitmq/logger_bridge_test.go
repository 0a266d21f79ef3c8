package rabbitmq

import (
	"testing"

	"recommendation-service/internal/core/port"

	"github.com/stretchr/testify/assert"
)

func TestPkgLoggerBridgeToFields(t *testing.T) {
	b := &PkgLoggerBridge{}
	fields := b.toFields("exchange", "recs", 42, "ignored", "dangling")
	assert.Equal(t, port.Fields{"exchange": "recs"}, fields)
}
