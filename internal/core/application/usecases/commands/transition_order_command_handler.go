package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// TransitionOrderCommandHandler is the single write path for order lifecycle
// changes. It authorizes the actor against the order's business, applies the
// requested action through the aggregate, and persists the result with a
// compare-and-set on the status the decision was based on. No status change
// reaches storage any other way.
//
// Authorization is resolved per action:
//   - confirm, assign, cancel, update_status: active owner or dispatcher
//   - accept: any active driver of the business (becomes the assigned driver)
//   - picked_up, en_route_delivery, delivered: the assigned driver only
//   - cancel is additionally open to the order's customer, subject to the
//     customer cancellation window
//
// Actors with no relationship to the order's business are told the order
// does not exist rather than that they lack access.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for lifecycle actions.
// The publisher receives a status-changed event after each successful commit.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle runs one lifecycle action and returns the updated order.
//
// Error contract:
//   - errs.ErrObjectNotFound: order missing, or actor unrelated to its business
//   - ErrAccessDenied: actor known to the business but not entitled to the action
//   - ErrDriverNotFound: assign named someone who is not an active driver
//   - order.ErrInvalidTransition / order.ErrCancellationNotAllowed: policy refusal
//   - errs.ErrConcurrencyConflict: a concurrent writer moved the order first
func (h TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	membership, err := h.resolveMembership(ctx, uow, cmd, ord)
	if err != nil {
		return nil, err
	}

	priorStatus := ord.Status()

	if err = h.applyAction(ctx, uow, cmd, ord, membership); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, ord, priorStatus); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// Best effort: a broker outage must not undo a committed transition.
	if h.publisher != nil {
		_ = h.publisher.PublishStatusChanged(ctx, ports.OrderStatusChangedEvent{
			OrderID:    ord.ID(),
			BusinessID: ord.BusinessID(),
			From:       priorStatus,
			To:         ord.Status(),
			OccurredAt: time.Now().UTC(),
		})
	}

	return ord, nil
}

// resolveMembership decides who the actor is relative to the order and
// whether they may run the requested action. A nil membership with a nil
// error means the customer cancellation path.
func (h TransitionOrderCommandHandler) resolveMembership(
	ctx context.Context,
	uow UoW,
	cmd TransitionOrderCommand,
	ord *order.Order,
) (*employee.Employee, error) {
	membership, err := uow.EmployeeRepository().GetByUserAndBusiness(
		ctx, cmd.Actor().UserID(), ord.BusinessID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if membership == nil {
		// Not staff. The only action open to outsiders is the customer
		// cancelling their own order; everyone else learns nothing.
		isCustomer := ord.CustomerID() != nil && ord.CustomerID().IsEqual(cmd.Actor().UserID())
		if !isCustomer {
			return nil, errs.NewObjectNotFoundError("orderID", cmd.OrderID())
		}
		if cmd.Action() != order.ActionCancel {
			return nil, ErrAccessDenied
		}
		return nil, nil
	}

	if !membership.IsActive() {
		return nil, ErrAccessDenied
	}

	switch cmd.Action() {
	case order.ActionConfirm, order.ActionAssign, order.ActionCancel, order.ActionUpdateStatus:
		if !membership.IsOwner() && !membership.HasRole(employee.RoleDispatcher) {
			return nil, ErrAccessDenied
		}
	case order.ActionAccept:
		if !membership.IsDriver() {
			return nil, ErrAccessDenied
		}
	case order.ActionPickedUp, order.ActionEnRouteDelivery, order.ActionDelivered:
		if !membership.IsDriver() {
			return nil, ErrAccessDenied
		}
		assigned := ord.AssignedDriverID()
		if assigned == nil || !assigned.IsEqual(membership.ID()) {
			return nil, ErrAccessDenied
		}
	}

	return membership, nil
}

// applyAction runs the aggregate mutator matching the action. The aggregate
// enforces the transition policy; this method only routes payload fields.
func (h TransitionOrderCommandHandler) applyAction(
	ctx context.Context,
	uow UoW,
	cmd TransitionOrderCommand,
	ord *order.Order,
	membership *employee.Employee,
) error {
	switch cmd.Action() {
	case order.ActionConfirm:
		return ord.Confirm()

	case order.ActionAssign:
		driver, err := uow.EmployeeRepository().GetForBusiness(ctx, *cmd.DriverID(), ord.BusinessID())
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return NewDriverNotFoundError(*cmd.DriverID())
			}
			return err
		}
		if !driver.IsActive() || !driver.IsDriver() {
			return NewDriverNotFoundError(*cmd.DriverID())
		}
		return ord.AssignDriver(driver.ID())

	case order.ActionAccept:
		return ord.Accept(membership.ID())

	case order.ActionPickedUp:
		return ord.MarkPickedUp()

	case order.ActionEnRouteDelivery:
		return ord.StartDelivery()

	case order.ActionDelivered:
		return ord.Deliver(cmd.DeliveryPhoto())

	case order.ActionCancel:
		party := order.CancelledByBusiness
		if membership == nil {
			party = order.CancelledByCustomer
		}
		return ord.CancelBy(party)

	case order.ActionUpdateStatus:
		return ord.OverrideStatus(cmd.TargetStatus(), cmd.DriverLocation())

	default:
		return &order.UnsupportedActionError{Action: cmd.Action().String()}
	}
}
