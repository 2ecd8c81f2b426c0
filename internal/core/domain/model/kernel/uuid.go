package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
// Identifiers must come from NewUUID, UUIDFromString, or UUIDFromBytes.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies every entity in the system: orders, businesses, employee
// memberships, and the user identities carried in auth tokens. It wraps
// github.com/google/uuid so the rest of the codebase never handles raw
// identifier bytes, and so the nil UUID is rejected at construction instead
// of leaking into foreign keys.
//
// UUID is an immutable value object; the zero value fails Validate.
//
// Example:
//
//	orderID := kernel.NewUUID()
//
//	driverID, err := kernel.UUIDFromString(req.DriverID)
//	if err != nil {
//	    // not a routable identifier
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random version-4 identifier. This is how every new
// aggregate gets its ID.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the canonical textual forms, including braced and
// urn-prefixed variants. Used at the edges: path parameters, JWT subjects,
// request payloads.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes restores an identifier from its 16-byte database
// representation. Unlike UUIDFromString it also rejects the nil UUID, since
// a stored row must never carry an unconstructed identifier.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value array. The persistence layer
// slices it (`id.Bytes()[:]`) for the 16-byte column representation; the copy
// semantics of the array keep the wrapper immutable.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers carry the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate rejects the zero (nil) UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
