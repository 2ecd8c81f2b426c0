package order

// Action is a named lifecycle operation that can be executed against an order.
// Every status mutation in the system maps to exactly one action; the wire
// names below are the contract with clients.
type Action string

const (
	// ActionConfirm moves a pending order to Confirmed.
	ActionConfirm Action = "confirm"

	// ActionAssign assigns a driver and moves the order to Assigned.
	ActionAssign Action = "assign"

	// ActionAccept is the driver accepting the assignment and starting
	// pickup travel; the order moves to EnRoutePickup.
	ActionAccept Action = "accept"

	// ActionUpdateStatus applies a caller-supplied target status,
	// optionally recording the driver's location. The target is subject
	// to the same transition policy as every other action.
	ActionUpdateStatus Action = "update_status"

	// ActionPickedUp marks the order as picked up.
	ActionPickedUp Action = "picked_up"

	// ActionEnRouteDelivery marks the driver as travelling to the
	// delivery address.
	ActionEnRouteDelivery Action = "en_route_delivery"

	// ActionDelivered marks the order as delivered, optionally storing a
	// proof-of-delivery photo.
	ActionDelivered Action = "delivered"

	// ActionCancel cancels the order, subject to the role-gated
	// cancellation policy.
	ActionCancel Action = "cancel"
)

// ParseAction parses a wire action name.
// Returns an *UnsupportedActionError for unrecognized names.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionConfirm, ActionAssign, ActionAccept, ActionUpdateStatus,
		ActionPickedUp, ActionEnRouteDelivery, ActionDelivered, ActionCancel:
		return Action(s), nil
	default:
		return "", &UnsupportedActionError{Action: s}
	}
}

// String returns the wire name of the action.
func (a Action) String() string {
	return string(a)
}

// TargetStatus returns the fixed target status of the action, and whether
// the action has one. ActionUpdateStatus has no fixed target - its target
// arrives with the request payload.
func (a Action) TargetStatus() (Status, bool) {
	switch a {
	case ActionConfirm:
		return Confirmed, true
	case ActionAssign:
		return Assigned, true
	case ActionAccept:
		return EnRoutePickup, true
	case ActionPickedUp:
		return PickedUp, true
	case ActionEnRouteDelivery:
		return EnRouteDelivery, true
	case ActionDelivered:
		return Delivered, true
	case ActionCancel:
		return Cancelled, true
	default:
		return Unknown, false
	}
}
