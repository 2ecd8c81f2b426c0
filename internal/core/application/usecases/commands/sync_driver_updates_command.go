package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrSyncDriverUpdatesCommandIsNotConstructed = errors.New(
	"SyncDriverUpdatesCommand must be created via NewSyncDriverUpdatesCommand constructor",
)

// BufferedStatusUpdate is one status change a driver device recorded while
// offline. ObservedAt is the device-local time of the change; it is reported
// back for diagnostics but server timestamps always win.
type BufferedStatusUpdate struct {
	OrderID    kernel.UUID
	Status     order.Status
	ObservedAt time.Time
}

// SyncDriverUpdatesCommand represents a driver device reconnecting and
// replaying the status updates it buffered while offline. Items are
// deliberately NOT validated here: the reconciler judges each one
// independently so a bad item cannot reject the whole batch.
type SyncDriverUpdatesCommand struct { //nolint:recvcheck //using for validation
	actor   Actor
	updates []BufferedStatusUpdate

	guard guard.ConstructorGuard
}

// NewSyncDriverUpdatesCommand creates a sync command for the given driver.
// An empty batch is valid and just refetches the driver's orders.
func NewSyncDriverUpdatesCommand(actor Actor, updates []BufferedStatusUpdate) (SyncDriverUpdatesCommand, error) {
	if err := actor.Validate(); err != nil {
		return SyncDriverUpdatesCommand{}, err
	}

	copied := make([]BufferedStatusUpdate, len(updates))
	copy(copied, updates)

	return SyncDriverUpdatesCommand{
		actor:   actor,
		updates: copied,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncDriverUpdatesCommand) Validate() error {
	return c.guard.Validate(ErrSyncDriverUpdatesCommandIsNotConstructed)
}

// Actor returns the driver whose device is syncing.
func (c SyncDriverUpdatesCommand) Actor() Actor {
	return c.actor
}

// Updates returns the buffered updates in client array order.
func (c SyncDriverUpdatesCommand) Updates() []BufferedStatusUpdate {
	return c.updates
}
