package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

const (
	// DefaultSyncItemTimeout bounds the persistence work for one buffered
	// update.
	DefaultSyncItemTimeout = 5 * time.Second

	// DefaultSyncBatchDeadline bounds one whole sync call. Items that do
	// not fit are reported as unprocessed rather than left hanging.
	DefaultSyncBatchDeadline = 30 * time.Second
)

// SyncOutcome classifies what happened to one buffered update.
type SyncOutcome string

const (
	// SyncApplied means the update passed the transition policy and was
	// persisted.
	SyncApplied SyncOutcome = "applied"

	// SyncSkipped means the update conflicted with current server state
	// (stale or out-of-order buffer) and was deliberately not applied.
	SyncSkipped SyncOutcome = "skipped"

	// SyncFailed means the update could not be judged or persisted: order
	// missing, outside the driver's scope, or an infrastructure error.
	SyncFailed SyncOutcome = "failed"
)

// SyncItemResult reports the fate of one buffered update, in batch order.
// ObservedAt echoes the device-local timestamp so the device can match
// results back to its buffer.
type SyncItemResult struct {
	OrderID    kernel.UUID
	Status     order.Status
	ObservedAt time.Time
	Outcome    SyncOutcome
	Reason     string
}

// SyncResult is the authoritative post-sync state returned to the driver
// device: every buffered update's fate plus a fresh fetch of the driver's
// current orders.
type SyncResult struct {
	SyncedOrders []*order.Order
	ItemResults  []SyncItemResult

	// Processed counts the updates that were attempted before the batch
	// deadline; Applied counts those actually written.
	Processed int
	Applied   int
}

// SyncDriverUpdatesCommandHandler reconciles a batch of client-buffered
// status updates against server state. Each item is judged independently
// inside its own transaction: it is replayed through the transition policy
// against the CURRENT server status, not the status the device remembers,
// and conflicting items are skipped rather than overwriting newer state.
// One item's failure never aborts the rest of the batch.
type SyncDriverUpdatesCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger

	itemTimeout   time.Duration
	batchDeadline time.Duration
}

// NewSyncDriverUpdatesCommandHandler creates a reconciler with the default
// per-item timeout and batch deadline.
func NewSyncDriverUpdatesCommandHandler(uowFactory UoWFactory, logger *slog.Logger) SyncDriverUpdatesCommandHandler {
	return SyncDriverUpdatesCommandHandler{
		uowFactory:    uowFactory,
		logger:        logger,
		itemTimeout:   DefaultSyncItemTimeout,
		batchDeadline: DefaultSyncBatchDeadline,
	}
}

// Handle replays the buffered updates in client array order. If two items
// target the same order, the later one wins, exactly as the device recorded
// them. The call itself succeeds whenever the batch could be walked; item
// failures live in the result, not in the returned error.
func (h SyncDriverUpdatesCommandHandler) Handle(
	ctx context.Context,
	cmd SyncDriverUpdatesCommand,
) (SyncResult, error) {
	if err := cmd.Validate(); err != nil {
		return SyncResult{}, err
	}

	batchCtx, cancel := context.WithTimeout(ctx, h.batchDeadline)
	defer cancel()

	result := SyncResult{
		ItemResults: make([]SyncItemResult, 0, len(cmd.Updates())),
	}

	for _, update := range cmd.Updates() {
		if batchCtx.Err() != nil {
			break
		}

		item := h.applyOne(batchCtx, cmd.Actor(), update)
		result.ItemResults = append(result.ItemResults, item)
		result.Processed++
		if item.Outcome == SyncApplied {
			result.Applied++
		}

		if item.Outcome != SyncApplied {
			h.logger.Warn("buffered update not applied",
				"order_id", update.OrderID.String(),
				"status", update.Status.String(),
				"outcome", string(item.Outcome),
				"reason", item.Reason)
		}
	}

	syncedOrders, err := h.fetchDriverOrders(ctx, cmd.Actor())
	if err != nil {
		return SyncResult{}, err
	}
	result.SyncedOrders = syncedOrders

	return result, nil
}

// applyOne judges and persists a single buffered update inside its own
// transaction and timeout.
func (h SyncDriverUpdatesCommandHandler) applyOne(
	ctx context.Context,
	actor Actor,
	update BufferedStatusUpdate,
) SyncItemResult {
	item := SyncItemResult{
		OrderID:    update.OrderID,
		Status:     update.Status,
		ObservedAt: update.ObservedAt,
	}

	itemCtx, cancel := context.WithTimeout(ctx, h.itemTimeout)
	defer cancel()

	if err := update.OrderID.Validate(); err != nil {
		item.Outcome = SyncFailed
		item.Reason = "order id is invalid"
		return item
	}
	if err := update.Status.Validate(); err != nil {
		item.Outcome = SyncFailed
		item.Reason = "status is invalid"
		return item
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(itemCtx); err != nil {
		item.Outcome = SyncFailed
		item.Reason = "transaction begin failed"
		return item
	}

	defer func() {
		_ = uow.Rollback(itemCtx)
	}()

	ord, err := uow.OrderRepository().Get(itemCtx, update.OrderID)
	if err != nil {
		item.Outcome = SyncFailed
		if errors.Is(err, errs.ErrObjectNotFound) {
			item.Reason = "order not found"
		} else {
			item.Reason = "order read failed"
		}
		return item
	}

	// Scope check: the order must be assigned to one of this user's driver
	// memberships. Out-of-scope orders look exactly like missing ones.
	membership, err := uow.EmployeeRepository().GetByUserAndBusiness(
		itemCtx, actor.UserID(), ord.BusinessID())
	if err != nil || membership == nil {
		item.Outcome = SyncFailed
		item.Reason = "order not found"
		return item
	}
	assigned := ord.AssignedDriverID()
	if !membership.IsActive() || !membership.IsDriver() ||
		assigned == nil || !assigned.IsEqual(membership.ID()) {
		item.Outcome = SyncFailed
		item.Reason = "order not found"
		return item
	}

	priorStatus := ord.Status()
	if priorStatus == update.Status {
		// The device replayed a change the server already has.
		item.Outcome = SyncSkipped
		item.Reason = "already in reported status"
		return item
	}

	if err = ord.OverrideStatus(update.Status, nil); err != nil {
		item.Outcome = SyncSkipped
		item.Reason = err.Error()
		return item
	}

	if err = uow.OrderRepository().Update(itemCtx, ord, priorStatus); err != nil {
		item.Outcome = SyncFailed
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			item.Reason = "concurrent update won"
		} else {
			item.Reason = "order write failed"
		}
		return item
	}

	if err = uow.Commit(itemCtx); err != nil {
		item.Outcome = SyncFailed
		item.Reason = "transaction commit failed"
		return item
	}

	item.Outcome = SyncApplied
	return item
}

func (h SyncDriverUpdatesCommandHandler) fetchDriverOrders(
	ctx context.Context,
	actor Actor,
) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllForDriverUser(ctx, actor.UserID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return orders, nil
}
