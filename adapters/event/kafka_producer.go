package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/user-gateway/internal/config"
)

const (
	TopicUserEvents = "user.events"
)

type UserEventType string

const (
	UserEventTypeUpserted UserEventType = "upserted"
	UserEventTypeDeleted  UserEventType = "deleted"
)

// UserEventPayload is the compact mirror of a mutation published to Kafka.
// It carries identifiers only, never the password digest.
type UserEventPayload struct {
	EventType UserEventType `json:"event_type"`
	UserID    uuid.UUID     `json:"user_id"`
	Email     string        `json:"email,omitempty"`
}

// Publisher is what the mutation usecases need from the Kafka side.
type Publisher interface {
	PublishUserEvent(ctx context.Context, payload UserEventPayload) error
}

type KafkaProducerClient struct {
	UserEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'user.events'
	userWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicUserEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		UserEventsWriter: userWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishUserEvent(ctx context.Context, payload UserEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal user event: %w", err)
	}

	err = c.UserEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("cannot write user event to Kafka: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.UserEventsWriter != nil {
		c.UserEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producers")
}
