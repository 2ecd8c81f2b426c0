package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor was created bypassing
// its constructor.
var ErrActorIsNotConstructed = errors.New(
	"Actor must be created via NewActor constructor")

// Actor identifies the authenticated platform user on whose behalf a command
// runs. What an actor may do is resolved per command: a business membership
// grants staff actions, while a matching order customer id grants customer
// cancellation only.
type Actor struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewActor creates an actor for the given authenticated user.
func NewActor(userID kernel.UUID) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the actor was created through the constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// UserID returns the authenticated user's identifier.
func (a Actor) UserID() kernel.UUID {
	return a.userID
}
