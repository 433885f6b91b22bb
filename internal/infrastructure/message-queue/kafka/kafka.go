package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alimikegami/product-catalog-service/config"
	"github.com/alimikegami/product-catalog-service/internal/dto"
	circuitbreaker "github.com/alimikegami/product-catalog-service/internal/infrastructure/circuit-breaker"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

const maxRetries = 3

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventPublisher publishes product events.
type EventPublisher interface {
	Publish(ctx context.Context, msg dto.KafkaMessage) error
	Close() error
}

type Publisher struct {
	writer  MessageWriter
	breaker *gobreaker.CircuitBreaker[struct{}]
	backoff time.Duration
}

// CreateEventPublisher returns a Kafka publisher, or a no-op one when no
// broker is configured.
func CreateEventPublisher(config *config.Config) EventPublisher {
	if config.KafkaConfig.BrokerAddress == "" {
		log.Info().Str("component", "CreateEventPublisher").Msg("no broker configured, product events are disabled")
		return NoopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(config.KafkaConfig.BrokerAddress),
		Topic:                  config.KafkaConfig.BrokerTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}

	return NewPublisher(writer, 100*time.Millisecond)
}

func NewPublisher(writer MessageWriter, backoff time.Duration) *Publisher {
	return &Publisher{
		writer:  writer,
		breaker: circuitbreaker.CreateCircuitBreaker[struct{}]("product-events", 30*time.Second),
		backoff: backoff,
	}
}

func (p *Publisher) Publish(ctx context.Context, msg dto.KafkaMessage) error {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	_, err = p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.writeWithRetry(ctx, msg.EventType, jsonMsg)
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Str("event_type", msg.EventType).Msg("")
		return err
	}

	return nil
}

func (p *Publisher) writeWithRetry(ctx context.Context, key string, value []byte) (err error) {
	for i := 0; i < maxRetries; i++ {
		err = p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(key),
			Value: value,
		})
		if err == nil {
			return nil
		}

		log.Ctx(ctx).Warn().Err(err).Str("component", "Publish").Msgf("Failed to write Kafka message (attempt %d/%d)", i+1, maxRetries)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff * time.Duration(i+1)):
		}
	}

	return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxRetries, err)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, msg dto.KafkaMessage) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
