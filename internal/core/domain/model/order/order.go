package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// CancelParty identifies which side of the marketplace initiated a
// cancellation. The transition policy is asymmetric between the two.
type CancelParty int

const (
	// CancelledByCustomer is a customer-initiated cancellation, permitted
	// only before a driver has begun pickup travel.
	CancelledByCustomer CancelParty = iota + 1

	// CancelledByBusiness is a business-initiated cancellation; the
	// business retains override authority throughout the lifecycle.
	CancelledByBusiness
)

// Order represents a customer delivery order in the system. It is the
// aggregate root that manages the order lifecycle from creation through
// confirmation, driver assignment, and delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and owning business
//   - Customer identification: either a customer reference exists, or the
//     name/phone/email trio is fully populated
//   - Delivery address must be present and independently valid
//   - Status transitions follow the policy defined on Status; every
//     mutator funnels through a single transition choke point
//   - createdAt is set once; updatedAt refreshes on every mutation;
//     confirmedAt/deliveredAt are set exactly once, on entering
//     Confirmed/Delivered respectively
//
// The Order struct uses private fields to ensure encapsulation and
// maintains its invariants through validated methods.
type Order struct {
	id         kernel.UUID
	businessID kernel.UUID
	status     Status

	// assignedDriverID references an employee record within the owning
	// business, not a raw user id. Nil while unassigned.
	assignedDriverID *kernel.UUID

	customerID    *kernel.UUID
	customerName  string
	customerPhone string
	customerEmail string

	deliveryAddress     kernel.Address
	orderDetails        string
	specialInstructions string
	totalAmount         float64

	estimatedDeliveryTime *time.Time
	createdAt             time.Time
	updatedAt             time.Time
	confirmedAt           *time.Time
	deliveredAt           *time.Time

	// deliveryPhoto is a proof-of-delivery reference, settable only when
	// transitioning into Delivered.
	deliveryPhoto string

	// driverLocation is the most recent position reported with an
	// update_status action.
	driverLocation *kernel.GeoLocation

	isConstructed bool
}

// NewOrderParams carries the data needed to create a new order.
// The ID is assigned by the caller; the status always starts at Pending.
type NewOrderParams struct {
	ID         kernel.UUID
	BusinessID kernel.UUID

	CustomerID    *kernel.UUID
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	DeliveryAddress     kernel.Address
	OrderDetails        string
	SpecialInstructions string
	TotalAmount         float64

	EstimatedDeliveryTime *time.Time
}

// NewOrder creates a new Order in Pending status with validation.
// This is the primary way to create orders, ensuring all business
// invariants hold from the start.
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: the ID validation error, or a *ValidationError aggregating
//     every structural field error (non-throwing validation result)
//
// Example:
//
//	addr, _ := kernel.NewAddress("1 Main St", "Springfield", "IL", "62701", "USA")
//	o, err := order.NewOrder(order.NewOrderParams{
//	    ID:            kernel.NewUUID(),
//	    BusinessID:    businessID,
//	    CustomerName:  "Ada",
//	    CustomerPhone: "+15550100",
//	    CustomerEmail: "ada@example.com",
//	    DeliveryAddress: addr,
//	    OrderDetails:  "2x large pizza",
//	})
func NewOrder(p NewOrderParams) (*Order, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &Order{
		id:                    p.ID,
		businessID:            p.BusinessID,
		status:                Pending,
		customerID:            p.CustomerID,
		customerName:          strings.TrimSpace(p.CustomerName),
		customerPhone:         strings.TrimSpace(p.CustomerPhone),
		customerEmail:         strings.TrimSpace(p.CustomerEmail),
		deliveryAddress:       p.DeliveryAddress,
		orderDetails:          strings.TrimSpace(p.OrderDetails),
		specialInstructions:   strings.TrimSpace(p.SpecialInstructions),
		totalAmount:           p.TotalAmount,
		estimatedDeliveryTime: p.EstimatedDeliveryTime,
		createdAt:             now,
		updatedAt:             now,
		isConstructed:         true,
	}

	if result := o.ValidateFields(); !result.IsValid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	return o, nil
}

// RestoreOrderParams carries a complete persisted order snapshot.
type RestoreOrderParams struct {
	ID         kernel.UUID
	BusinessID kernel.UUID
	Status     Status

	AssignedDriverID *kernel.UUID

	CustomerID    *kernel.UUID
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	DeliveryAddress     kernel.Address
	OrderDetails        string
	SpecialInstructions string
	TotalAmount         float64

	EstimatedDeliveryTime *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	ConfirmedAt           *time.Time
	DeliveredAt           *time.Time

	DeliveryPhoto  string
	DriverLocation *kernel.GeoLocation
}

// RestoreOrder reconstructs an Order from persistence without re-running
// creation-time rules. The status must still be a valid registry status.
// This function is intended for repository implementations only.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(p.ID.Validate(), p.BusinessID.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:                    p.ID,
		businessID:            p.BusinessID,
		status:                p.Status,
		assignedDriverID:      p.AssignedDriverID,
		customerID:            p.CustomerID,
		customerName:          p.CustomerName,
		customerPhone:         p.CustomerPhone,
		customerEmail:         p.CustomerEmail,
		deliveryAddress:       p.DeliveryAddress,
		orderDetails:          p.OrderDetails,
		specialInstructions:   p.SpecialInstructions,
		totalAmount:           p.TotalAmount,
		estimatedDeliveryTime: p.EstimatedDeliveryTime,
		createdAt:             p.CreatedAt,
		updatedAt:             p.UpdatedAt,
		confirmedAt:           p.ConfirmedAt,
		deliveredAt:           p.DeliveredAt,
		deliveryPhoto:         p.DeliveryPhoto,
		driverLocation:        p.DriverLocation,
		isConstructed:         true,
	}, nil
}

// ValidationResult is the non-throwing outcome of structural validation.
// The caller decides how to surface the errors (HTTP 400, form re-render, etc).
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// ValidateFields checks the structural rules for an order snapshot:
// status valid, owning business present, delivery address present and
// independently valid, order details present, and customer identification
// satisfied (a customer reference, or the full name/phone/email trio).
//
// Validation is purely structural - it does not enforce transition-policy
// rules. Transition legality is checked against previously persisted state
// by the lifecycle write path, never by the aggregate alone.
func (o *Order) ValidateFields() ValidationResult {
	var fieldErrors []string

	if err := o.status.Validate(); err != nil {
		fieldErrors = append(fieldErrors, "order status is invalid")
	}

	if err := o.businessID.Validate(); err != nil {
		fieldErrors = append(fieldErrors, "business ID is required")
	}

	if o.customerID == nil {
		if o.customerName == "" {
			fieldErrors = append(fieldErrors, "customer name is required")
		}
		if o.customerPhone == "" {
			fieldErrors = append(fieldErrors, "customer phone is required")
		}
		if o.customerEmail == "" {
			fieldErrors = append(fieldErrors, "customer email is required")
		}
	}

	if err := o.deliveryAddress.Validate(); err != nil {
		fieldErrors = append(fieldErrors, "delivery address is required")
	}

	if o.orderDetails == "" {
		fieldErrors = append(fieldErrors, "order details are required")
	}

	return ValidationResult{
		IsValid: len(fieldErrors) == 0,
		Errors:  fieldErrors,
	}
}

// Validate ensures the Order instance was properly constructed through a
// factory function. This prevents bypassing validation by directly
// instantiating the struct. Repository implementations call this before
// persisting.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BusinessID returns the owning business identifier.
func (o *Order) BusinessID() kernel.UUID {
	return o.businessID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// AssignedDriverID returns the assigned driver's employee identifier.
// Returns nil while no driver is assigned.
func (o *Order) AssignedDriverID() *kernel.UUID {
	return o.assignedDriverID
}

// CustomerID returns the customer's user reference, nil when the order was
// captured with manual contact fields instead.
func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

// CustomerName returns the manually captured customer name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerPhone returns the manually captured customer phone.
func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

// CustomerEmail returns the manually captured customer email.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// DeliveryAddress returns the structured delivery destination.
func (o *Order) DeliveryAddress() kernel.Address {
	return o.deliveryAddress
}

// OrderDetails returns the line-item description.
func (o *Order) OrderDetails() string {
	return o.orderDetails
}

// SpecialInstructions returns the optional delivery instructions.
func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

// TotalAmount returns the order total.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// EstimatedDeliveryTime returns the optional delivery time estimate.
func (o *Order) EstimatedDeliveryTime() *time.Time {
	return o.estimatedDeliveryTime
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ConfirmedAt returns the timestamp of entering Confirmed, nil before then.
func (o *Order) ConfirmedAt() *time.Time {
	return o.confirmedAt
}

// DeliveredAt returns the timestamp of entering Delivered, nil before then.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// DeliveryPhoto returns the proof-of-delivery reference, empty until delivered.
func (o *Order) DeliveryPhoto() string {
	return o.deliveryPhoto
}

// DriverLocation returns the last driver-reported position, nil if never reported.
func (o *Order) DriverLocation() *kernel.GeoLocation {
	return o.driverLocation
}

// Confirm transitions the order from Pending to Confirmed and records
// confirmedAt. Returns an *InvalidTransitionError from any other status.
func (o *Order) Confirm() error {
	return o.applyTransition(Confirmed)
}

// AssignDriver assigns the order to a driver employee and transitions it
// to Assigned. The driverEmployeeID must reference an employee record
// within the order's business; resolving it is the caller's concern.
//
// Returns an error if the employee ID is invalid or the transition is
// not allowed from the current status.
func (o *Order) AssignDriver(driverEmployeeID kernel.UUID) error {
	if err := driverEmployeeID.Validate(); err != nil {
		return err
	}

	if err := o.applyTransition(Assigned); err != nil {
		return err
	}

	o.assignedDriverID = &driverEmployeeID
	return nil
}

// Accept records the assigned driver starting pickup travel, transitioning
// the order to EnRoutePickup. The accepting employee becomes the assigned
// driver; this covers the self-accept flow where the order was confirmed
// but a dispatcher never explicitly assigned it.
func (o *Order) Accept(driverEmployeeID kernel.UUID) error {
	if err := driverEmployeeID.Validate(); err != nil {
		return err
	}

	if err := o.applyTransition(EnRoutePickup); err != nil {
		return err
	}

	o.assignedDriverID = &driverEmployeeID
	return nil
}

// MarkPickedUp transitions the order to PickedUp.
func (o *Order) MarkPickedUp() error {
	return o.applyTransition(PickedUp)
}

// StartDelivery transitions the order to EnRouteDelivery.
func (o *Order) StartDelivery() error {
	return o.applyTransition(EnRouteDelivery)
}

// Deliver transitions the order to Delivered, records deliveredAt, and
// optionally stores the proof-of-delivery photo reference. Delivered is
// reachable only from EnRouteDelivery.
func (o *Order) Deliver(deliveryPhoto string) error {
	if err := o.applyTransition(Delivered); err != nil {
		return err
	}

	if deliveryPhoto != "" {
		o.deliveryPhoto = deliveryPhoto
	}
	return nil
}

// CancelBy cancels the order on behalf of the given party.
//
// Customer-initiated cancellation is permitted only while the order is in
// Pending, Confirmed, or Assigned - before a driver has begun pickup
// travel. Business-initiated cancellation is role-permitted from any
// status, but the transition policy still rejects cancelling an order
// that is already terminal.
//
// Returns ErrCancellationNotAllowed (wrapped) when the party's role gate
// rejects the cancellation, or an *InvalidTransitionError when the order
// is already terminal.
func (o *Order) CancelBy(party CancelParty) error {
	switch party {
	case CancelledByCustomer:
		if !o.status.CanCustomerCancel() {
			return fmt.Errorf("%w: customer cannot cancel order in status %s",
				ErrCancellationNotAllowed, o.status)
		}
	case CancelledByBusiness:
		if !o.status.CanBusinessCancel() {
			return fmt.Errorf("%w: business cannot cancel order in status %s",
				ErrCancellationNotAllowed, o.status)
		}
	default:
		return fmt.Errorf("%w: unknown cancelling party", ErrCancellationNotAllowed)
	}

	return o.applyTransition(Cancelled)
}

// OverrideStatus applies a caller-supplied target status, optionally
// recording the driver's reported location. Despite being the free-form
// status write path, the target is subject to the same transition policy
// as every named action; there is no bypass around the state machine.
func (o *Order) OverrideStatus(to Status, location *kernel.GeoLocation) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}

	if err := o.applyTransition(to); err != nil {
		return err
	}

	if location != nil {
		o.driverLocation = location
	}
	return nil
}

// applyTransition is the single choke point for status mutation. It runs
// the transition policy, applies the new status, refreshes updatedAt, and
// stamps confirmedAt/deliveredAt exactly once when entering those states.
func (o *Order) applyTransition(to Status) error {
	newStatus, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.updatedAt = now

	if newStatus == Confirmed && o.confirmedAt == nil {
		o.confirmedAt = &now
	}
	if newStatus == Delivered && o.deliveredAt == nil {
		o.deliveredAt = &now
	}

	return nil
}
