package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderDetailsAreRequired = errors.New("order details are required")
	ErrTotalAmountIsNegative   = errors.New("total amount must not be negative")
)

// CreateOrderCommand represents a request to register a new delivery order
// for a business. The customer is either a platform user reference or an
// inline name/phone/email trio; structural validation of that choice happens
// inside the order aggregate.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    BusinessID:    businessID,
//	    CustomerName:  "Ada Lovelace",
//	    CustomerPhone: "+1 555 0100",
//	    CustomerEmail: "ada@example.com",
//	    DeliveryAddress: addr,
//	    OrderDetails:  "2x large pizza",
//	    TotalAmount:   34.50,
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	businessID kernel.UUID

	customerID    *kernel.UUID
	customerName  string
	customerPhone string
	customerEmail string

	deliveryAddress     kernel.Address
	orderDetails        string
	specialInstructions string
	totalAmount         float64

	estimatedDeliveryTime *time.Time

	guard guard.ConstructorGuard
}

// CreateOrderParams carries the inputs for NewCreateOrderCommand.
type CreateOrderParams struct {
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

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates the business reference and the command-level basics; the full
// structural rules run when the order aggregate is built.
func NewCreateOrderCommand(params CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBusinessID(params.BusinessID),
		cmd.setOrderDetails(params.OrderDetails),
		cmd.setTotalAmount(params.TotalAmount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.customerID = params.CustomerID
	cmd.customerName = params.CustomerName
	cmd.customerPhone = params.CustomerPhone
	cmd.customerEmail = params.CustomerEmail
	cmd.deliveryAddress = params.DeliveryAddress
	cmd.specialInstructions = params.SpecialInstructions
	cmd.estimatedDeliveryTime = params.EstimatedDeliveryTime

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// BusinessID returns the business the order belongs to.
func (c CreateOrderCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// CustomerID returns the optional platform user reference for the customer.
func (c CreateOrderCommand) CustomerID() *kernel.UUID {
	return c.customerID
}

// CustomerName returns the inline customer name, if any.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the inline customer phone, if any.
func (c CreateOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// CustomerEmail returns the inline customer email, if any.
func (c CreateOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// DeliveryAddress returns the delivery destination.
func (c CreateOrderCommand) DeliveryAddress() kernel.Address {
	return c.deliveryAddress
}

// OrderDetails returns the free-text order contents.
func (c CreateOrderCommand) OrderDetails() string {
	return c.orderDetails
}

// SpecialInstructions returns handling notes, if any.
func (c CreateOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

// TotalAmount returns the order total.
func (c CreateOrderCommand) TotalAmount() float64 {
	return c.totalAmount
}

// EstimatedDeliveryTime returns the promised delivery time, if any.
func (c CreateOrderCommand) EstimatedDeliveryTime() *time.Time {
	return c.estimatedDeliveryTime
}

func (c *CreateOrderCommand) setBusinessID(businessID kernel.UUID) error {
	if err := businessID.Validate(); err != nil {
		return err
	}

	c.businessID = businessID
	return nil
}

func (c *CreateOrderCommand) setOrderDetails(orderDetails string) error {
	if orderDetails == "" {
		return ErrOrderDetailsAreRequired
	}

	c.orderDetails = orderDetails
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(totalAmount float64) error {
	if totalAmount < 0 {
		return ErrTotalAmountIsNegative
	}

	c.totalAmount = totalAmount
	return nil
}
