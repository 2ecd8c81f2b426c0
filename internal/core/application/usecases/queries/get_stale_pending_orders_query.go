package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetStalePendingOrdersQueryIsNotConstructed = errors.New(
		"GetStalePendingOrdersQuery must be created via NewGetStalePendingOrdersQuery constructor",
	)
	ErrThresholdIsInvalid = errors.New("threshold must be greater than 0")
)

// GetStalePendingOrdersQuery finds orders that have sat in pending status
// longer than a threshold, so operators can chase unconfirmed orders.
type GetStalePendingOrdersQuery struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewGetStalePendingOrdersQuery creates a stale order query.
func NewGetStalePendingOrdersQuery(olderThan time.Duration) (GetStalePendingOrdersQuery, error) {
	if olderThan <= 0 {
		return GetStalePendingOrdersQuery{}, ErrThresholdIsInvalid
	}

	return GetStalePendingOrdersQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStalePendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStalePendingOrdersQueryIsNotConstructed)
}

// OlderThan returns how long an order may stay pending before it counts as
// stale.
func (q GetStalePendingOrdersQuery) OlderThan() time.Duration {
	return q.olderThan
}

// StalePendingOrderResponse identifies one order stuck in pending.
type StalePendingOrderResponse struct {
	ID         kernel.UUID
	Number     int64
	BusinessID kernel.UUID
	CreatedAt  time.Time
}
