package ports

import (
	"context"

	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/kernel"
)

// EmployeeRepository defines the persistence contract for employee
// memberships. Lookups are business-scoped: an employee id is only
// meaningful together with its business.
type EmployeeRepository interface {
	// Add persists a new employee membership.
	Add(ctx context.Context, aggregate *employee.Employee) error

	// Update persists changes to an existing employee membership.
	Update(ctx context.Context, aggregate *employee.Employee) error

	// Get retrieves an employee by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error)

	// GetForBusiness retrieves an employee by id, but only if the membership
	// belongs to the given business.
	GetForBusiness(ctx context.Context, id, businessID kernel.UUID) (*employee.Employee, error)

	// GetByUserAndBusiness retrieves the membership binding a platform user
	// to a business, if one exists.
	GetByUserAndBusiness(ctx context.Context, userID, businessID kernel.UUID) (*employee.Employee, error)

	// GetAllForBusiness retrieves all memberships of a business.
	GetAllForBusiness(ctx context.Context, businessID kernel.UUID) ([]*employee.Employee, error)

	// CountActiveOwners counts the active employees holding the owner role
	// within a business. Used to keep a business from losing its last owner.
	CountActiveOwners(ctx context.Context, businessID kernel.UUID) (int64, error)

	// Remove deletes an employee membership.
	Remove(ctx context.Context, id kernel.UUID) error
}
