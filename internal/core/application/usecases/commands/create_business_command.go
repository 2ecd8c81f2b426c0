package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateBusinessCommandIsNotConstructed = errors.New(
		"CreateBusinessCommand must be created via NewCreateBusinessCommand constructor",
	)
	ErrBusinessNameIsRequired        = errors.New("business name is required")
	ErrBusinessDescriptionIsRequired = errors.New("business description is required")
)

// CreateBusinessCommand represents a request to register a new business
// tenant. The acting user becomes the business's first owner employee.
type CreateBusinessCommand struct { //nolint:recvcheck //using for validation
	actor       Actor
	name        string
	description string
	website     string
	phone       string
	address     kernel.Address
	delivery    business.DeliverySettings

	guard guard.ConstructorGuard
}

// CreateBusinessParams carries the inputs for NewCreateBusinessCommand.
// Website, Phone, and Delivery are optional.
type CreateBusinessParams struct {
	Actor       Actor
	Name        string
	Description string
	Website     string
	Phone       string
	Address     kernel.Address
	Delivery    business.DeliverySettings
}

// NewCreateBusinessCommand creates a command to register a business.
func NewCreateBusinessCommand(params CreateBusinessParams) (CreateBusinessCommand, error) {
	if err := params.Actor.Validate(); err != nil {
		return CreateBusinessCommand{}, err
	}
	if params.Name == "" {
		return CreateBusinessCommand{}, ErrBusinessNameIsRequired
	}
	if params.Description == "" {
		return CreateBusinessCommand{}, ErrBusinessDescriptionIsRequired
	}
	if err := params.Address.Validate(); err != nil {
		return CreateBusinessCommand{}, err
	}

	return CreateBusinessCommand{
		actor:       params.Actor,
		name:        params.Name,
		description: params.Description,
		website:     params.Website,
		phone:       params.Phone,
		address:     params.Address,
		delivery:    params.Delivery,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBusinessCommand) Validate() error {
	return c.guard.Validate(ErrCreateBusinessCommandIsNotConstructed)
}

// Actor returns the user registering the business.
func (c CreateBusinessCommand) Actor() Actor {
	return c.actor
}

// Name returns the business display name.
func (c CreateBusinessCommand) Name() string {
	return c.name
}

// Description returns the business description.
func (c CreateBusinessCommand) Description() string {
	return c.description
}

// Website returns the optional website.
func (c CreateBusinessCommand) Website() string {
	return c.website
}

// Phone returns the optional contact phone.
func (c CreateBusinessCommand) Phone() string {
	return c.phone
}

// Address returns the business street address.
func (c CreateBusinessCommand) Address() kernel.Address {
	return c.address
}

// Delivery returns the delivery settings, zero value meaning defaults.
func (c CreateBusinessCommand) Delivery() business.DeliverySettings {
	return c.delivery
}
