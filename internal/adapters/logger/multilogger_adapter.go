package logger_adapter

import (
	"fmt"

	"recommendation-service/internal/core/port"
)

// MultiLoggerAdapter fans every entry out to several loggers.
type MultiLoggerAdapter struct {
	loggers []port.LoggerPort
}

// NewMultiloggerAdapter skips nil loggers and flattens nested multiloggers so
// every sink receives each entry once.
func NewMultiloggerAdapter(loggers ...port.LoggerPort) (port.LoggerPort, error) {
	var sinks []port.LoggerPort
	for _, logger := range loggers {
		switch l := logger.(type) {
		case nil:
		case *MultiLoggerAdapter:
			sinks = append(sinks, l.loggers...)
		default:
			sinks = append(sinks, l)
		}
	}
	if len(sinks) == 0 {
		return nil, fmt.Errorf("multilogger: at least one logger is required")
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return &MultiLoggerAdapter{loggers: sinks}, nil
}

func (m *MultiLoggerAdapter) Info(msg string, fields port.Fields) {
	for _, logger := range m.loggers {
		logger.Info(msg, fields)
	}
}

func (m *MultiLoggerAdapter) Warn(msg string, fields port.Fields) {
	for _, logger := range m.loggers {
		logger.Warn(msg, fields)
	}
}

func (m *MultiLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	for _, logger := range m.loggers {
		logger.Error(msg, err, fields)
	}
}

func (m *MultiLoggerAdapter) Debug(msg string, fields port.Fields) {
	for _, logger := range m.loggers {
		logger.Debug(msg, fields)
	}
}

func (m *MultiLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	enriched := make([]port.LoggerPort, 0, len(m.loggers))
	for _, logger := range m.loggers {
		enriched = append(enriched, logger.WithFields(fields))
	}
	return &MultiLoggerAdapter{loggers: enriched}
}
