package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// audit-logger tails the task-event topic and appends every event to a
// log file, one JSON document per line.

type loggerConfig struct {
	Broker  string `env:"KAFKA_BROKER" env-required:"true"`
	Topic   string `env:"KAFKA_TOPIC" env-default:"task-events"`
	GroupID string `env:"KAFKA_GROUP_ID" env-default:"audit-logger"`
	LogFile string `env:"AUDIT_LOG_FILE" env-required:"true"`
}

func main() {
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Logger()

	var cfg loggerConfig
	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Error().
			Err(err).
			Str("path", cfg.LogFile).
			Msg("failed to open log file")
		panic(err)
	}
	defer func() { _ = file.Close() }()

	fileLogger := zerolog.New(file).
		With().
		Timestamp().
		Logger()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
	defer func() { _ = reader.Close() }()

	logger.Info().
		Str("broker", cfg.Broker).
		Str("topic", cfg.Topic).
		Msg("audit logger started")

	for {
		msg, err := reader.ReadMessage(context.Background())
		if err != nil {
			logger.Error().
				Err(err).
				Msg("failed to read message")
			continue
		}

		fileLogger.Info().
			Str("key", string(msg.Key)).
			RawJSON("event", msg.Value).
			Msg("task event")
	}
}
