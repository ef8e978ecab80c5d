package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/model"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const (
	publishTimeout = 5 * time.Second
	batchTimeout   = 10 * time.Millisecond
)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to one topic for orders and one for catalogs,
// keyed by seller so each seller's events stay ordered within a partition.
type KafkaPublisher struct {
	orders   messageWriter
	catalogs messageWriter
	logger   zerolog.Logger
}

// NewKafkaPublisher creates writers for the order and catalog topics.
func NewKafkaPublisher(brokers []string, orderTopic, catalogTopic string, logger zerolog.Logger) *KafkaPublisher {
	logger = logger.With().Str("component", "kafka-publisher").Logger()
	logger.Info().
		Strs("brokers", brokers).
		Str("order_topic", orderTopic).
		Str("catalog_topic", catalogTopic).
		Msg("kafka publisher configured")

	return newKafkaPublisher(newWriter(brokers, orderTopic), newWriter(brokers, catalogTopic), logger)
}

func newKafkaPublisher(orders, catalogs messageWriter, logger zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		orders:   orders,
		catalogs: catalogs,
		logger:   logger,
	}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batchTimeout,
		WriteTimeout:           publishTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, order *model.Order) error {
	return p.publish(ctx, p.orders, order.SellerID, newEnvelope(TypeOrderCreated, order))
}

func (p *KafkaPublisher) CatalogCreated(ctx context.Context, catalog *model.Catalog) error {
	return p.publish(ctx, p.catalogs, catalog.SellerID, newEnvelope(TypeCatalogCreated, catalog))
}

func (p *KafkaPublisher) CatalogUpdated(ctx context.Context, catalog *model.Catalog) error {
	return p.publish(ctx, p.catalogs, catalog.SellerID, newEnvelope(TypeCatalogUpdated, catalog))
}

func (p *KafkaPublisher) publish(ctx context.Context, w messageWriter, key string, event Envelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// The event outlives the request that caused it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err = w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("event_type", event.Type).
			Str("key", key).
			Msg("failed to publish event")
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	p.logger.Debug().
		Str("event_type", event.Type).
		Str("event_id", event.ID.String()).
		Str("key", key).
		Msg("event published")

	return nil
}

// Close flushes and closes both writers.
func (p *KafkaPublisher) Close() error {
	return errors.Join(p.orders.Close(), p.catalogs.Close())
}
