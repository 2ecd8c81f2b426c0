package employee

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Role is a capability an employee holds within one business. An employee
// carries a set of roles; driver identity in particular is always resolved
// through an employee record, never through a raw user id.
type Role string

const (
	// RoleOwner can manage the business, its employees, and all orders.
	RoleOwner Role = "owner"

	// RoleDriver can accept assignments and report delivery progress.
	RoleDriver Role = "driver"

	// RoleDispatcher can manage orders and assign drivers.
	RoleDispatcher Role = "dispatcher"
)

// ParseRole parses a wire role name.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleDriver, RoleDispatcher:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", s))
	}
}

// Validate checks the role is one of the known values.
func (r Role) Validate() error {
	_, err := ParseRole(string(r))
	return err
}

// String returns the wire name of the role.
func (r Role) String() string {
	return string(r)
}

// Status is the standing of an employee within their business. Only active
// employees may act on orders.
type Status string

const (
	// StatusActive employees can act within the business.
	StatusActive Status = "active"

	// StatusInactive employees are temporarily disabled.
	StatusInactive Status = "inactive"

	// StatusSuspended employees are blocked pending review.
	StatusSuspended Status = "suspended"
)

// ParseStatus parses a wire employee status name.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusInactive, StatusSuspended:
		return Status(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("employeeStatus",
			fmt.Errorf("%q is not a valid employee status", s))
	}
}

// Validate checks the status is one of the known values.
func (s Status) Validate() error {
	_, err := ParseStatus(string(s))
	return err
}

// String returns the wire name of the status.
func (s Status) String() string {
	return string(s)
}
