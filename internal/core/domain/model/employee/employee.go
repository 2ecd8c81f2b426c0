package employee

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrEmployeeIsNotConstructed is returned when an Employee was created
// bypassing its constructors.
var ErrEmployeeIsNotConstructed = errors.New(
	"employee is not constructed, use NewEmployee() or RestoreEmployee()")

// Employee is a membership record binding a platform user to a business with
// a set of roles. The same user may be an employee of several businesses;
// each membership is a distinct Employee with its own roles and status.
type Employee struct {
	id         kernel.UUID
	userID     kernel.UUID
	businessID kernel.UUID
	roles      []Role
	status     Status
	createdAt  time.Time
	updatedAt  time.Time

	isConstructed bool
}

// NewEmployee creates an active employee with the given roles. The roles are
// deduplicated: granting a role the employee already holds is a no-op.
func NewEmployee(userID, businessID kernel.UUID, roles []Role) (*Employee, error) {
	if err := userID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("userID", err)
	}
	if err := businessID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}
	if len(roles) == 0 {
		return nil, errs.NewValueIsRequiredError("roles")
	}
	for _, role := range roles {
		if err := role.Validate(); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	return &Employee{
		id:         kernel.NewUUID(),
		userID:     userID,
		businessID: businessID,
		roles:      dedupeRoles(roles),
		status:     StatusActive,
		createdAt:  now,
		updatedAt:  now,

		isConstructed: true,
	}, nil
}

// RestoreEmployee reconstructs an employee from persistence without
// revalidating business rules.
func RestoreEmployee(id, userID, businessID kernel.UUID, roles []Role, status Status,
	createdAt, updatedAt time.Time) *Employee {
	return &Employee{
		id:         id,
		userID:     userID,
		businessID: businessID,
		roles:      dedupeRoles(roles),
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,

		isConstructed: true,
	}
}

// Validate checks that the employee was created through a constructor.
func (e *Employee) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEmployeeIsNotConstructed
	}
	return nil
}

// ID returns the employee identifier.
func (e *Employee) ID() kernel.UUID {
	return e.id
}

// UserID returns the platform user this membership belongs to.
func (e *Employee) UserID() kernel.UUID {
	return e.userID
}

// BusinessID returns the business this membership belongs to.
func (e *Employee) BusinessID() kernel.UUID {
	return e.businessID
}

// Roles returns a copy of the employee's roles.
func (e *Employee) Roles() []Role {
	roles := make([]Role, len(e.roles))
	copy(roles, e.roles)
	return roles
}

// Status returns the employee's standing within the business.
func (e *Employee) Status() Status {
	return e.status
}

// CreatedAt returns the membership creation time.
func (e *Employee) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns the last modification time.
func (e *Employee) UpdatedAt() time.Time {
	return e.updatedAt
}

// HasRole reports whether the employee holds the given role.
func (e *Employee) HasRole(role Role) bool {
	for _, r := range e.roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsOwner reports whether the employee holds the owner role.
func (e *Employee) IsOwner() bool {
	return e.HasRole(RoleOwner)
}

// IsDriver reports whether the employee holds the driver role.
func (e *Employee) IsDriver() bool {
	return e.HasRole(RoleDriver)
}

// IsActive reports whether the employee may currently act within the business.
func (e *Employee) IsActive() bool {
	return e.status == StatusActive
}

// GrantRole adds a role to the employee's set. Granting an already held role
// leaves the set unchanged and does not bump the update time.
func (e *Employee) GrantRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if e.HasRole(role) {
		return nil
	}
	e.roles = append(e.roles, role)
	e.updatedAt = time.Now().UTC()
	return nil
}

// RevokeRole removes a role from the employee's set. Revoking a role the
// employee does not hold is a no-op. The last remaining role cannot be
// revoked.
func (e *Employee) RevokeRole(role Role) error {
	if !e.HasRole(role) {
		return nil
	}
	if len(e.roles) == 1 {
		return errs.NewValueIsRequiredError("roles")
	}
	kept := make([]Role, 0, len(e.roles)-1)
	for _, r := range e.roles {
		if r != role {
			kept = append(kept, r)
		}
	}
	e.roles = kept
	e.updatedAt = time.Now().UTC()
	return nil
}

// SetStatus changes the employee's standing.
func (e *Employee) SetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if e.status == status {
		return nil
	}
	e.status = status
	e.updatedAt = time.Now().UTC()
	return nil
}

// Equal compares employees by identity.
func (e *Employee) Equal(other *Employee) bool {
	if other == nil {
		return false
	}
	return e.id.IsEqual(other.id)
}

func dedupeRoles(roles []Role) []Role {
	seen := make(map[Role]struct{}, len(roles))
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
