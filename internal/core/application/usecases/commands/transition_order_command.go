package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
	ErrDriverIDIsRequired     = errors.New("driver id is required for the assign action")
	ErrTargetStatusIsRequired = errors.New("target status is required for the update_status action")
)

// TransitionOrderCommand represents a request to run one lifecycle action
// against an order. The action's payload fields are optional and
// action-specific: assign carries a driver id, delivered may carry a photo,
// update_status carries the target status and may carry a driver location.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(TransitionOrderParams{
//	    OrderID: orderID,
//	    Action:  order.ActionAssign,
//	    Actor:   actor,
//	    DriverID: &driverID,
//	})
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  order.Action
	actor   Actor

	driverID       *kernel.UUID
	deliveryPhoto  string
	targetStatus   order.Status
	driverLocation *kernel.GeoLocation

	guard guard.ConstructorGuard
}

// TransitionOrderParams carries the inputs for NewTransitionOrderCommand.
type TransitionOrderParams struct {
	OrderID kernel.UUID
	Action  order.Action
	Actor   Actor

	// DriverID names the driver employee for the assign action.
	DriverID *kernel.UUID

	// DeliveryPhoto is an optional proof-of-delivery reference for the
	// delivered action.
	DeliveryPhoto string

	// TargetStatus is the requested status for the update_status action.
	TargetStatus order.Status

	// DriverLocation optionally records where the driver reported from.
	DriverLocation *kernel.GeoLocation
}

// NewTransitionOrderCommand creates a lifecycle transition command.
// Validates that the action is known and that its required payload fields
// are present; transition legality itself is decided by the handler against
// the order's persisted state.
func NewTransitionOrderCommand(params TransitionOrderParams) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(params.OrderID),
		cmd.setAction(params.Action),
		cmd.setActor(params.Actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	switch params.Action {
	case order.ActionAssign:
		if params.DriverID == nil {
			return TransitionOrderCommand{}, ErrDriverIDIsRequired
		}
		if err := params.DriverID.Validate(); err != nil {
			return TransitionOrderCommand{}, err
		}
	case order.ActionUpdateStatus:
		if params.TargetStatus == order.Unknown {
			return TransitionOrderCommand{}, ErrTargetStatusIsRequired
		}
		if err := params.TargetStatus.Validate(); err != nil {
			return TransitionOrderCommand{}, err
		}
	}

	cmd.driverID = params.DriverID
	cmd.deliveryPhoto = params.DeliveryPhoto
	cmd.targetStatus = params.TargetStatus
	cmd.driverLocation = params.DriverLocation

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order the action targets.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the lifecycle action to run.
func (c TransitionOrderCommand) Action() order.Action {
	return c.action
}

// Actor returns the authenticated user running the action.
func (c TransitionOrderCommand) Actor() Actor {
	return c.actor
}

// DriverID returns the driver employee for the assign action, if any.
func (c TransitionOrderCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// DeliveryPhoto returns the proof-of-delivery reference, if any.
func (c TransitionOrderCommand) DeliveryPhoto() string {
	return c.deliveryPhoto
}

// TargetStatus returns the requested status for the update_status action.
func (c TransitionOrderCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// DriverLocation returns the reported driver location, if any.
func (c TransitionOrderCommand) DriverLocation() *kernel.GeoLocation {
	return c.driverLocation
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setAction(action order.Action) error {
	if _, err := order.ParseAction(action.String()); err != nil {
		return err
	}

	c.action = action
	return nil
}

func (c *TransitionOrderCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
