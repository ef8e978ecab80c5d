// Package events publishes marketplace domain events.
package events

import (
	"context"
	"time"

	"marketplace/internal/model"

	"github.com/google/uuid"
)

// Event types carried in the envelope.
const (
	TypeOrderCreated   = "order.created"
	TypeCatalogCreated = "catalog.created"
	TypeCatalogUpdated = "catalog.updated"
)

// Envelope wraps every published payload.
type Envelope struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// Publisher emits domain events. Callers treat failures as non-fatal.
type Publisher interface {
	OrderCreated(ctx context.Context, order *model.Order) error
	CatalogCreated(ctx context.Context, catalog *model.Catalog) error
	CatalogUpdated(ctx context.Context, catalog *model.Catalog) error
	Close() error
}

// NopPublisher discards every event. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(context.Context, *model.Order) error { return nil }

func (NopPublisher) CatalogCreated(context.Context, *model.Catalog) error { return nil }

func (NopPublisher) CatalogUpdated(context.Context, *model.Catalog) error { return nil }

func (NopPublisher) Close() error { return nil }

func newEnvelope(eventType string, payload any) Envelope {
	return Envelope{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
