// Package rabbitmq publishes order lifecycle events to a RabbitMQ topic
// exchange so downstream consumers (notification senders, analytics) can
// react to status changes without coupling to the write path.
package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"dispatch/internal/core/ports"
)

const (
	// ExchangeName is the topic exchange order events are published to.
	ExchangeName = "order_events"

	routingKeyStatusChanged = "order.status_changed"

	publishTimeout = 5 * time.Second
)

// statusChangedMessage is the wire format of an order status change event.
type statusChangedMessage struct {
	OrderID    string    `json:"order_id"`
	BusinessID string    `json:"business_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderEventPublisher implements ports.OrderEventPublisher on top of a
// RabbitMQ channel.
type OrderEventPublisher struct {
	channel *amqp.Channel
}

// NewOrderEventPublisher opens a channel on the given connection and declares
// the durable order events exchange.
func NewOrderEventPublisher(conn *amqp.Connection) (*OrderEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &OrderEventPublisher{channel: ch}, nil
}

// PublishStatusChanged sends the event to the topic exchange with persistent
// delivery. Messages survive broker restarts; consumers bind their own
// queues.
func (p *OrderEventPublisher) PublishStatusChanged(
	ctx context.Context,
	event ports.OrderStatusChangedEvent,
) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	body, err := json.Marshal(statusChangedMessage{
		OrderID:    event.OrderID.String(),
		BusinessID: event.BusinessID.String(),
		From:       event.From.String(),
		To:         event.To.String(),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(
		ctx,
		ExchangeName,
		routingKeyStatusChanged,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Close releases the channel. The connection stays open; it belongs to the
// caller.
func (p *OrderEventPublisher) Close() error {
	return p.channel.Close()
}
