package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverOrdersQueryIsNotConstructed = errors.New(
	"GetDriverOrdersQuery must be created via NewGetDriverOrdersQuery constructor",
)

// GetDriverOrdersQuery lists the orders assigned to any driver membership of
// one platform user, across businesses. This is the view a driver's device
// renders.
type GetDriverOrdersQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverOrdersQuery creates a driver order listing query.
func NewGetDriverOrdersQuery(userID kernel.UUID) (GetDriverOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetDriverOrdersQuery{}, err
	}

	return GetDriverOrdersQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverOrdersQueryIsNotConstructed)
}

// UserID returns the driver's platform user id.
func (q GetDriverOrdersQuery) UserID() kernel.UUID {
	return q.userID
}
