package services

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Routing keys of the catalog events.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventCatalogReset   = "catalog.reset"
)

// EventPublisher sends a message to an exchange. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CatalogEvent is the JSON body of every catalog event.
type CatalogEvent struct {
	Type       string    `json:"type"`
	ProductID  string    `json:"product_id,omitempty"`
	Title      string    `json:"title,omitempty"`
	Slug       string    `json:"slug,omitempty"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// eventEmitter publishes catalog events on a best effort basis: failures are
// logged and never reach the caller.
type eventEmitter struct {
	publisher EventPublisher
	exchange  string
	log       *zap.Logger
}

func (e eventEmitter) emit(event CatalogEvent) {
	if e.publisher == nil {
		e.log.Debug("No event publisher configured, skipping event", zap.String("type", event.Type))
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		e.log.Warn("Failed to marshal catalog event", zap.String("type", event.Type), zap.Error(err))
		return
	}
	if err := e.publisher.Publish(e.exchange, event.Type, body); err != nil {
		e.log.Warn("Failed to publish catalog event",
			zap.String("type", event.Type),
			zap.String("product_id", event.ProductID),
			zap.Error(err),
		)
		return
	}
	e.log.Debug("Published catalog event", zap.String("type", event.Type), zap.String("product_id", event.ProductID))
}
