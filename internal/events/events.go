// Package events describes the stock movement notifications published after
// each committed ledger operation.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"

	"fruteria/internal/models"
)

// Exchange is the topic exchange movement events are published to.
const Exchange = "inventory"

// Kind doubles as the routing key of the event.
type Kind string

const (
	EntryRecorded Kind = "stock.entry.recorded"
	ExitRecorded  Kind = "stock.exit.recorded"
	EntryReversed Kind = "stock.entry.reversed"
	ExitReversed  Kind = "stock.exit.reversed"
)

// MovementEvent reports a change in a product's stock.
type MovementEvent struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"kind"`
	MovementID  uint            `json:"movementId"`
	ProductID   uint            `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	Stock       decimal.Decimal `json:"stock"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// NewMovementEvent builds an event for a movement applied to product.
// product must already carry the resulting stock.
func NewMovementEvent(kind Kind, movementID uint, product models.Product, quantity decimal.Decimal) MovementEvent {
	return MovementEvent{
		ID:          uuid.NewString(),
		Kind:        kind,
		MovementID:  movementID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Stock:       product.Stock,
		OccurredAt:  time.Now().UTC(),
	}
}

// Publisher delivers movement events.
type Publisher interface {
	Publish(ctx context.Context, event MovementEvent) error
}

// Broker is the subset of a message broker client used by BrokerPublisher.
type Broker interface {
	Publish(exchange, routingKey string, body []byte) error
}

// BrokerPublisher publishes events as JSON to Exchange, routed by Kind.
type BrokerPublisher struct {
	broker Broker
}

// NewBrokerPublisher wraps broker.
func NewBrokerPublisher(broker Broker) *BrokerPublisher {
	return &BrokerPublisher{broker: broker}
}

// Publish implements Publisher.
func (p *BrokerPublisher) Publish(ctx context.Context, event MovementEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal movement event: %w", err)
	}
	if err := p.broker.Publish(Exchange, string(event.Kind), body); err != nil {
		return fmt.Errorf("failed to publish %s event %s: %w", event.Kind, event.ID, err)
	}
	return nil
}

// LogHandler returns a delivery handler that decodes movement events and logs them.
// Undecodable messages are reported as errors so the consumer can reject them.
func LogHandler(logger zerolog.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event MovementEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("decode movement event (tag %d): %w", msg.DeliveryTag, err)
		}
		logger.Info().
			Str("event_id", event.ID).
			Str("kind", string(event.Kind)).
			Uint("product_id", event.ProductID).
			Str("product", event.ProductName).
			Str("quantity", event.Quantity.String()).
			Str("stock", event.Stock.String()).
			Msg("stock movement event received")
		return nil
	}
}
