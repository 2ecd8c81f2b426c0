package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderStatusChangedEvent notifies interested parties that an order moved
// between lifecycle statuses.
type OrderStatusChangedEvent struct {
	OrderID    kernel.UUID
	BusinessID kernel.UUID
	From       order.Status
	To         order.Status
	OccurredAt time.Time
}

// OrderEventPublisher publishes order lifecycle events to a message broker.
// Publishing happens after the owning transaction commits and is best
// effort: a publish failure must not fail the command that produced it.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}

// NoopOrderEventPublisher drops every event. Used when no broker is
// configured.
type NoopOrderEventPublisher struct{}

func (NoopOrderEventPublisher) PublishStatusChanged(context.Context, OrderStatusChangedEvent) error {
	return nil
}
