package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrAccessDenied is returned when the actor is authenticated but not
// entitled to the requested operation.
var ErrAccessDenied = errors.New("access denied")

// ErrLastOwner is returned when removing or deactivating an employee would
// leave their business without an active owner.
var ErrLastOwner = errors.New("business must keep at least one active owner")

// ErrDriverNotFound is the sentinel wrapped by DriverNotFoundError.
var ErrDriverNotFound = errors.New("driver not found")

// DriverNotFoundError is returned when an assignment names an employee that
// does not exist in the order's business, is not active, or does not hold
// the driver role.
type DriverNotFoundError struct {
	DriverID kernel.UUID
}

// NewDriverNotFoundError creates a DriverNotFoundError for the given id.
func NewDriverNotFoundError(driverID kernel.UUID) *DriverNotFoundError {
	return &DriverNotFoundError{DriverID: driverID}
}

func (e *DriverNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s is not an active driver of this business", ErrDriverNotFound, e.DriverID)
}

func (e *DriverNotFoundError) Unwrap() error {
	return ErrDriverNotFound
}
