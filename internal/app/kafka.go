package app

import (
	"github.com/mkravets/go-task-api/internal/config"
	"github.com/mkravets/go-task-api/internal/events"
)

var globalEventProducer *events.Producer

// ConnectKafka initializes the audit-event producer. Kafka is optional:
// with no broker configured task events are simply not published.
func ConnectKafka() {
	cfg := config.Global().Kafka
	if cfg.Broker == "" {
		globalLogger.Info().Msg("kafka broker not configured, audit events disabled")
		return
	}

	globalEventProducer = events.NewProducer(globalLogger, cfg.Broker, cfg.Topic)
	globalLogger.Info().
		Str("broker", cfg.Broker).
		Str("topic", cfg.Topic).
		Msg("initialized kafka producer")
}

func DisconnectKafka() {
	if globalEventProducer == nil {
		return
	}

	err := globalEventProducer.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close kafka producer")
		return
	}
	globalLogger.Info().Msg("closed kafka producer")
}
