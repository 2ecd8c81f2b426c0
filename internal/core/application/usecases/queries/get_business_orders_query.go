package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetBusinessOrdersQueryIsNotConstructed = errors.New(
	"GetBusinessOrdersQuery must be created via NewGetBusinessOrdersQuery constructor",
)

// GetBusinessOrdersQuery lists a business's orders, newest first, optionally
// narrowed by status and/or assigned driver.
type GetBusinessOrdersQuery struct {
	businessID kernel.UUID
	status     *order.Status
	driverID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBusinessOrdersQuery creates a business order listing query. Both
// filters are optional.
func NewGetBusinessOrdersQuery(
	businessID kernel.UUID,
	status *order.Status,
	driverID *kernel.UUID,
) (GetBusinessOrdersQuery, error) {
	if err := businessID.Validate(); err != nil {
		return GetBusinessOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetBusinessOrdersQuery{}, err
		}
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return GetBusinessOrdersQuery{}, err
		}
	}

	return GetBusinessOrdersQuery{
		businessID: businessID,
		status:     status,
		driverID:   driverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBusinessOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBusinessOrdersQueryIsNotConstructed)
}

// BusinessID returns the business whose orders are listed.
func (q GetBusinessOrdersQuery) BusinessID() kernel.UUID {
	return q.businessID
}

// Status returns the optional status filter.
func (q GetBusinessOrdersQuery) Status() *order.Status {
	return q.status
}

// DriverID returns the optional assigned-driver filter.
func (q GetBusinessOrdersQuery) DriverID() *kernel.UUID {
	return q.driverID
}
