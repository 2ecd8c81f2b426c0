// Package ports defines the persistence and messaging contracts between the
// application core and the adapters, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, but only if the
	// stored row is still in expectedStatus. The compare-and-set guards
	// against concurrent writers racing past each other: if the row has moved
	// on since it was read, Update returns errs.ConcurrencyConflictError and
	// writes nothing.
	Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllForDriver retrieves all orders currently assigned to the given
	// driver employee, newest first.
	GetAllForDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error)

	// GetAllForDriverUser retrieves all orders assigned to any driver
	// membership of the given platform user, across businesses, newest
	// first. This is the authoritative post-sync view for a driver device.
	GetAllForDriverUser(ctx context.Context, userID kernel.UUID) ([]*order.Order, error)
}
