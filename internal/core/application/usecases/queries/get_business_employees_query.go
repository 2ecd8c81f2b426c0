package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetBusinessEmployeesQueryIsNotConstructed = errors.New(
	"GetBusinessEmployeesQuery must be created via NewGetBusinessEmployeesQuery constructor",
)

// GetBusinessEmployeesQuery lists the employee memberships of one business.
type GetBusinessEmployeesQuery struct {
	businessID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBusinessEmployeesQuery creates an employee listing query.
func NewGetBusinessEmployeesQuery(businessID kernel.UUID) (GetBusinessEmployeesQuery, error) {
	if err := businessID.Validate(); err != nil {
		return GetBusinessEmployeesQuery{}, err
	}

	return GetBusinessEmployeesQuery{
		businessID: businessID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBusinessEmployeesQuery) Validate() error {
	return q.guard.Validate(ErrGetBusinessEmployeesQueryIsNotConstructed)
}

// BusinessID returns the business whose employees are listed.
func (q GetBusinessEmployeesQuery) BusinessID() kernel.UUID {
	return q.businessID
}

// EmployeeResponse is the read model returned by employee queries.
type EmployeeResponse struct {
	ID         kernel.UUID
	UserID     kernel.UUID
	BusinessID kernel.UUID
	Roles      []employee.Role
	Status     employee.Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
