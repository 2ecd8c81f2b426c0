package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateEmployeeCommandIsNotConstructed = errors.New(
		"CreateEmployeeCommand must be created via NewCreateEmployeeCommand constructor",
	)
	ErrRolesAreRequired = errors.New("at least one role is required")
)

// CreateEmployeeCommand represents a request to add a user to a business
// with a set of roles. Only active owners of the business may do this.
type CreateEmployeeCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	businessID kernel.UUID
	userID     kernel.UUID
	roles      []employee.Role

	guard guard.ConstructorGuard
}

// NewCreateEmployeeCommand creates a command to add an employee membership.
func NewCreateEmployeeCommand(
	actor Actor,
	businessID, userID kernel.UUID,
	roles []employee.Role,
) (CreateEmployeeCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		businessID.Validate(),
		userID.Validate(),
	); err != nil {
		return CreateEmployeeCommand{}, err
	}
	if len(roles) == 0 {
		return CreateEmployeeCommand{}, ErrRolesAreRequired
	}
	for _, role := range roles {
		if err := role.Validate(); err != nil {
			return CreateEmployeeCommand{}, err
		}
	}

	copied := make([]employee.Role, len(roles))
	copy(copied, roles)

	return CreateEmployeeCommand{
		actor:      actor,
		businessID: businessID,
		userID:     userID,
		roles:      copied,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateEmployeeCommand) Validate() error {
	return c.guard.Validate(ErrCreateEmployeeCommandIsNotConstructed)
}

// Actor returns the user issuing the command.
func (c CreateEmployeeCommand) Actor() Actor {
	return c.actor
}

// BusinessID returns the business gaining the employee.
func (c CreateEmployeeCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// UserID returns the platform user being added.
func (c CreateEmployeeCommand) UserID() kernel.UUID {
	return c.userID
}

// Roles returns the roles to grant.
func (c CreateEmployeeCommand) Roles() []employee.Role {
	return c.roles
}
