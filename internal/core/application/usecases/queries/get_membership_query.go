package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetMembershipQueryIsNotConstructed = errors.New(
	"GetMembershipQuery must be created via NewGetMembershipQuery constructor",
)

// GetMembershipQuery resolves one user's membership in one business. Read
// endpoints use it to decide whether the caller may see business-scoped
// data.
type GetMembershipQuery struct {
	userID     kernel.UUID
	businessID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetMembershipQuery creates a membership lookup query.
func NewGetMembershipQuery(userID, businessID kernel.UUID) (GetMembershipQuery, error) {
	if err := errors.Join(userID.Validate(), businessID.Validate()); err != nil {
		return GetMembershipQuery{}, err
	}

	return GetMembershipQuery{
		userID:     userID,
		businessID: businessID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMembershipQuery) Validate() error {
	return q.guard.Validate(ErrGetMembershipQueryIsNotConstructed)
}

// UserID returns the user whose membership is resolved.
func (q GetMembershipQuery) UserID() kernel.UUID {
	return q.userID
}

// BusinessID returns the business scope.
func (q GetMembershipQuery) BusinessID() kernel.UUID {
	return q.businessID
}
