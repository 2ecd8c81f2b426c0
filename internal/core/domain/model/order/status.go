package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Assigned ──> EnRoutePickup ──> PickedUp ──> EnRouteDelivery ──> Delivered
//	   │            │            │              │               │               │
//	   └────────────┴────────────┴──────────────┴───────────────┴───────────────┴──> Cancelled
//
// Progression along the forward chain is single-step only: no skipping,
// no going backward. Cancelled is reachable from every non-terminal state.
// Delivered and Cancelled are terminal.
//
// Status is a value object that validates state transitions and provides
// wire names plus presentation metadata (label, description, color) for
// each state.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order was submitted and is
	// waiting for business confirmation.
	Pending

	// Confirmed indicates the business has confirmed the order.
	Confirmed

	// Assigned indicates the business has assigned a driver to the order.
	Assigned

	// EnRoutePickup indicates the driver is on route to pick up the order.
	EnRoutePickup

	// PickedUp indicates the driver has picked up the order.
	PickedUp

	// EnRouteDelivery indicates the driver is on route to deliver the order.
	EnRouteDelivery

	// Delivered indicates the order has been delivered successfully.
	// This is a terminal state.
	Delivered

	// Cancelled indicates the order has been cancelled.
	// This is a terminal state.
	Cancelled
)

// statusMetadata holds the static per-status presentation data.
type statusMetadata struct {
	name        string
	label       string
	description string
	color       string
}

// getStatusMetadata returns the registry of valid statuses with their
// wire names and presentation metadata.
func getStatusMetadata() map[Status]statusMetadata {
	return map[Status]statusMetadata{
		Pending: {
			name:        "pending",
			label:       "Pending",
			description: "Order submitted and waiting for business confirmation",
			color:       "yellow",
		},
		Confirmed: {
			name:        "confirmed",
			label:       "Confirmed",
			description: "Business has confirmed the order",
			color:       "blue",
		},
		Assigned: {
			name:        "assigned",
			label:       "Assigned",
			description: "Business has assigned a driver to the order",
			color:       "purple",
		},
		EnRoutePickup: {
			name:        "en_route_pickup",
			label:       "En Route to Pickup",
			description: "Driver is on route to pickup the order",
			color:       "orange",
		},
		PickedUp: {
			name:        "picked_up",
			label:       "Picked Up",
			description: "Driver has picked up the order",
			color:       "indigo",
		},
		EnRouteDelivery: {
			name:        "en_route_delivery",
			label:       "En Route to Delivery",
			description: "Driver is on route to deliver the order",
			color:       "cyan",
		},
		Delivered: {
			name:        "delivered",
			label:       "Delivered",
			description: "Order has been delivered successfully",
			color:       "green",
		},
		Cancelled: {
			name:        "cancelled",
			label:       "Cancelled",
			description: "Order has been cancelled",
			color:       "red",
		},
	}
}

// AllStatuses returns every valid status in canonical forward-path order,
// with Cancelled last.
func AllStatuses() []Status {
	return []Status{
		Pending,
		Confirmed,
		Assigned,
		EnRoutePickup,
		PickedUp,
		EnRouteDelivery,
		Delivered,
		Cancelled,
	}
}

// StatusFromString parses a wire name (e.g. "en_route_pickup") into a Status.
// Returns a ValueIsInvalidError for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, meta := range getStatusMetadata() {
		if meta.name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Returns:
//   - nil if the status is one of the registry statuses
//   - error with details if the status is invalid (including Unknown)
//
// This method is used to ensure Status values from external sources
// (e.g., database, API, offline sync batches) are valid before use.
func (s Status) Validate() error {
	if _, ok := getStatusMetadata()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status (e.g. "en_route_pickup").
// Returns "unknown" for invalid status values.
// This method implements the fmt.Stringer interface and is safe to call
// on any Status value.
func (s Status) String() string {
	if meta, ok := getStatusMetadata()[s]; ok {
		return meta.name
	}
	return "unknown"
}

// Label returns the human-readable label of the status (e.g. "En Route to Pickup").
func (s Status) Label() string {
	if meta, ok := getStatusMetadata()[s]; ok {
		return meta.label
	}
	return "Unknown"
}

// Description returns the long-form description of the status.
func (s Status) Description() string {
	return getStatusMetadata()[s].description
}

// Color returns the presentation color name associated with the status.
func (s Status) Color() string {
	return getStatusMetadata()[s].color
}

// IsTerminal reports whether the status permits no further transitions.
// Delivered and Cancelled are the terminal states.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next returns the single deterministic successor along the canonical
// forward path, and whether one exists. Terminal states (and invalid
// values) have no successor.
func (s Status) Next() (Status, bool) {
	switch s {
	case Pending:
		return Confirmed, true
	case Confirmed:
		return Assigned, true
	case Assigned:
		return EnRoutePickup, true
	case EnRoutePickup:
		return PickedUp, true
	case PickedUp:
		return EnRouteDelivery, true
	case EnRouteDelivery:
		return Delivered, true
	default:
		return Unknown, false
	}
}

// CanTransitionTo reports whether a transition from the receiver to the
// target status is legal:
//
//   - Cancelled is reachable from any non-terminal state (universal escape).
//   - Delivered is reachable only from EnRouteDelivery; the generic
//     forward-chain rule is not sufficient for the final hop.
//   - Every other target is legal iff it is the single-step successor of
//     the receiver. No skipping steps, no going backward, no leaving a
//     terminal state.
func (s Status) CanTransitionTo(to Status) bool {
	if to == Cancelled {
		return !s.IsTerminal() && s.Validate() == nil
	}

	if to == Delivered {
		return s == EnRouteDelivery
	}

	next, ok := s.Next()
	return ok && next == to
}

// TransitionTo validates and performs a transition, returning the new status.
//
// Returns:
//   - (to, nil) when the transition is legal per CanTransitionTo
//   - (0, *InvalidTransitionError) carrying the attempted from->to pair otherwise
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(to) {
		return Unknown, &InvalidTransitionError{From: s, To: to}
	}

	return to, nil
}

// CanCustomerCancel reports whether a customer-initiated cancellation is
// permitted from this status. Customers may cancel only before a driver
// has begun physical pickup travel: Pending, Confirmed, or Assigned.
func (s Status) CanCustomerCancel() bool {
	return s == Pending || s == Confirmed || s == Assigned
}

// CanBusinessCancel reports whether a business-initiated cancellation is
// permitted from this status. The business retains override authority at
// every point of the lifecycle, so this returns true for every valid
// status - including terminal ones. The lifecycle write path still runs
// CanTransitionTo, which stops terminal orders from actually being
// cancelled; this predicate only encodes the role policy.
func (s Status) CanBusinessCancel() bool {
	return s.Validate() == nil
}

// NextAction returns the lifecycle action that moves an order out of this
// status along the forward path, and whether one exists.
func (s Status) NextAction() (Action, bool) {
	switch s {
	case Pending:
		return ActionConfirm, true
	case Confirmed:
		return ActionAssign, true
	case Assigned:
		return ActionAccept, true
	case EnRoutePickup:
		return ActionPickedUp, true
	case PickedUp:
		return ActionEnRouteDelivery, true
	case EnRouteDelivery:
		return ActionDelivered, true
	default:
		return "", false
	}
}
