package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/mkravets/go-task-api/internal/models"
)

const EventTaskCreated = "task.created"

type taskEvent struct {
	Event     string    `json:"event"`
	TaskID    int64     `json:"task_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// Producer publishes task lifecycle events to a Kafka topic.
type Producer struct {
	logger zerolog.Logger
	writer *kafka.Writer
}

func NewProducer(logger zerolog.Logger, broker, topic string) *Producer {
	return &Producer{
		logger: logger,
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Producer) TaskCreated(ctx context.Context, task *models.Task) {
	event := taskEvent{
		Event:     EventTaskCreated,
		TaskID:    task.ID,
		UserID:    task.UserID,
		Title:     task.Title,
		Status:    task.Status,
		Priority:  task.Priority,
		CreatedAt: task.CreatedAt,
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().
			Err(err).
			Msg("failed to marshal task event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(task.ID, 10)),
		Value: value,
		Time:  time.Now(),
	}

	// Audit events are advisory: a broker failure is logged and the
	// request proceeds.
	err = p.writer.WriteMessages(ctx, msg)
	if err != nil {
		p.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to write task event")
		return
	}
	p.logger.Debug().
		Int64("task_id", task.ID).
		Msg("published task event")
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
