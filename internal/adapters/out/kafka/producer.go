package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/order"

	"github.com/IBM/sarama"
)

// OrderChangedProducer implements ports.EventPublisher.
type OrderChangedProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewSaramaConfig is the producer configuration: every in-sync replica
// acknowledges and successes are returned to the sync producer.
func NewSaramaConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Timeout = 5 * time.Second
	return config
}

// NewOrderChangedProducer connects to brokers.
func NewOrderChangedProducer(brokers []string, topic string, logger *slog.Logger) (*OrderChangedProducer, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewOrderChangedProducerWith(producer, topic, logger), nil
}

// NewOrderChangedProducerWith wraps an existing producer.
func NewOrderChangedProducerWith(producer sarama.SyncProducer, topic string, logger *slog.Logger) *OrderChangedProducer {
	return &OrderChangedProducer{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_producer", "topic", topic),
	}
}

func (p *OrderChangedProducer) PublishStatusChanged(ctx context.Context, event order.StatusChanged) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := encodeStatusChanged(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID.String()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(EventType)},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish status change",
			"order_id", event.OrderID.String(), "error", err)
		return err
	}

	p.logger.DebugContext(ctx, "Status change published",
		"order_id", event.OrderID.String(), "partition", partition, "offset", offset)
	return nil
}

func (p *OrderChangedProducer) Close() error {
	return p.producer.Close()
}

// LogPublisher writes events to the log instead of a broker. It is used when
// no Kafka host is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "event_log")}
}

func (p *LogPublisher) PublishStatusChanged(ctx context.Context, event order.StatusChanged) error {
	p.logger.InfoContext(ctx, "Order status changed",
		"order_id", event.OrderID.String(),
		"order_number", event.OrderNumber,
		"group", event.Group.String(),
		"from", event.From.String(),
		"to", event.To.String(),
	)
	return nil
}
