package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRemoveEmployeeCommandIsNotConstructed = errors.New(
	"RemoveEmployeeCommand must be created via NewRemoveEmployeeCommand constructor",
)

// RemoveEmployeeCommand represents a request to remove an employee
// membership from a business.
type RemoveEmployeeCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	businessID kernel.UUID
	employeeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveEmployeeCommand creates a command to remove a membership.
func NewRemoveEmployeeCommand(actor Actor, businessID, employeeID kernel.UUID) (RemoveEmployeeCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		businessID.Validate(),
		employeeID.Validate(),
	); err != nil {
		return RemoveEmployeeCommand{}, err
	}

	return RemoveEmployeeCommand{
		actor:      actor,
		businessID: businessID,
		employeeID: employeeID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveEmployeeCommand) Validate() error {
	return c.guard.Validate(ErrRemoveEmployeeCommandIsNotConstructed)
}

// Actor returns the user issuing the command.
func (c RemoveEmployeeCommand) Actor() Actor {
	return c.actor
}

// BusinessID returns the business losing the employee.
func (c RemoveEmployeeCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// EmployeeID returns the membership being removed.
func (c RemoveEmployeeCommand) EmployeeID() kernel.UUID {
	return c.employeeID
}
