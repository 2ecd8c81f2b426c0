package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetBusinessesQueryIsNotConstructed = errors.New(
	"GetBusinessesQuery must be created via NewGetBusinessesQuery constructor",
)

// GetBusinessesQuery lists every business the given platform user is a
// member of.
type GetBusinessesQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBusinessesQuery creates a business listing query for one user.
func NewGetBusinessesQuery(userID kernel.UUID) (GetBusinessesQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetBusinessesQuery{}, err
	}

	return GetBusinessesQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBusinessesQuery) Validate() error {
	return q.guard.Validate(ErrGetBusinessesQueryIsNotConstructed)
}

// UserID returns the user whose businesses are listed.
func (q GetBusinessesQuery) UserID() kernel.UUID {
	return q.userID
}
