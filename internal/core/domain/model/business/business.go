// Package business holds the Business aggregate: the tenant boundary every
// order and employee belongs to.
package business

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrBusinessIsNotConstructed is returned when a Business was created
// bypassing its constructors.
var ErrBusinessIsNotConstructed = errors.New(
	"business is not constructed, use NewBusiness() or RestoreBusiness()")

// Business is a tenant on the platform. Orders and employees are always
// scoped to exactly one business.
type Business struct {
	id          kernel.UUID
	name        string
	description string
	website     string
	phone       string
	address     kernel.Address
	delivery    DeliverySettings
	ownerUserID kernel.UUID
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewBusinessParams carries the inputs for NewBusiness. Website and Phone are
// optional; zero Delivery settings fall back to the defaults.
type NewBusinessParams struct {
	Name        string
	Description string
	Website     string
	Phone       string
	Address     kernel.Address
	Delivery    DeliverySettings
	OwnerUserID kernel.UUID
}

// NewBusiness creates a business owned by the given platform user.
func NewBusiness(params NewBusinessParams) (*Business, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	description := strings.TrimSpace(params.Description)
	if description == "" {
		return nil, errs.NewValueIsRequiredError("description")
	}
	if err := params.Address.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("address", err)
	}
	if err := params.OwnerUserID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("ownerUserID", err)
	}

	delivery := params.Delivery
	if delivery == (DeliverySettings{}) {
		delivery = DefaultDeliverySettings()
	}

	now := time.Now().UTC()
	return &Business{
		id:          kernel.NewUUID(),
		name:        name,
		description: description,
		website:     strings.TrimSpace(params.Website),
		phone:       strings.TrimSpace(params.Phone),
		address:     params.Address,
		delivery:    delivery,
		ownerUserID: params.OwnerUserID,
		createdAt:   now,
		updatedAt:   now,

		isConstructed: true,
	}, nil
}

// RestoreBusinessParams carries the persisted state for RestoreBusiness.
type RestoreBusinessParams struct {
	ID          kernel.UUID
	Name        string
	Description string
	Website     string
	Phone       string
	Address     kernel.Address
	Delivery    DeliverySettings
	OwnerUserID kernel.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RestoreBusiness reconstructs a business from persistence without
// revalidating business rules.
func RestoreBusiness(params RestoreBusinessParams) *Business {
	return &Business{
		id:          params.ID,
		name:        params.Name,
		description: params.Description,
		website:     params.Website,
		phone:       params.Phone,
		address:     params.Address,
		delivery:    params.Delivery,
		ownerUserID: params.OwnerUserID,
		createdAt:   params.CreatedAt,
		updatedAt:   params.UpdatedAt,

		isConstructed: true,
	}
}

// Validate checks that the business was created through a constructor.
func (b *Business) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBusinessIsNotConstructed
	}
	return nil
}

// ID returns the business identifier.
func (b *Business) ID() kernel.UUID {
	return b.id
}

// Name returns the business display name.
func (b *Business) Name() string {
	return b.name
}

// Description returns the business description.
func (b *Business) Description() string {
	return b.description
}

// Website returns the business website, if any.
func (b *Business) Website() string {
	return b.website
}

// Phone returns the business contact phone, if any.
func (b *Business) Phone() string {
	return b.phone
}

// Address returns the business street address.
func (b *Business) Address() kernel.Address {
	return b.address
}

// Delivery returns the delivery settings.
func (b *Business) Delivery() DeliverySettings {
	return b.delivery
}

// OwnerUserID returns the platform user who created the business.
func (b *Business) OwnerUserID() kernel.UUID {
	return b.ownerUserID
}

// CreatedAt returns the creation time.
func (b *Business) CreatedAt() time.Time {
	return b.createdAt
}

// UpdatedAt returns the last modification time.
func (b *Business) UpdatedAt() time.Time {
	return b.updatedAt
}

// UpdateProfile replaces the mutable profile fields. Name and description
// must stay non-empty.
func (b *Business) UpdateProfile(name, description, website, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}

	b.name = name
	b.description = description
	b.website = strings.TrimSpace(website)
	b.phone = strings.TrimSpace(phone)
	b.updatedAt = time.Now().UTC()
	return nil
}

// SetDeliverySettings replaces the delivery settings.
func (b *Business) SetDeliverySettings(settings DeliverySettings) {
	b.delivery = settings
	b.updatedAt = time.Now().UTC()
}

// Equal compares businesses by identity.
func (b *Business) Equal(other *Business) bool {
	if other == nil {
		return false
	}
	return b.id.IsEqual(other.id)
}
