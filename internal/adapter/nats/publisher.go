package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Subjects for storefront analytics events consumed by the platform's
// reporting pipeline.
const (
	SubjectOrderPlaced = "storefront.order.placed"
	SubjectCartCleared = "storefront.cart.cleared"
)

type EventPublisher interface {
	Publish(ctx context.Context, subject string, event interface{}) error
}

type natsPublisher struct {
	conn *nats.Conn
}

func NewEventPublisher(conn *nats.Conn) (EventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("NATS connection cannot be nil")
	}
	return &natsPublisher{conn: conn}, nil
}

func (p *natsPublisher) Publish(_ context.Context, subject string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for subject %s: %w", subject, err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish event to NATS subject %s: %w", subject, err)
	}
	return nil
}

// NopPublisher is used when NATS is disabled; events are dropped silently.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }
