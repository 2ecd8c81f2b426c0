// Package businessrepo provides data transfer objects and mapping functions
// for business persistence.
package businessrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/kernel"
)

// BusinessDTO represents the database structure for persisting business
// tenants.
type BusinessDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Description string
	Website     string
	Phone       string

	Address AddressDTO `gorm:"embedded"`

	DeliveryRadius      int
	DeliveryRadiusUnit  string `gorm:"type:varchar(16)"`
	SpecialRequirements string

	OwnerUserID uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for business entities.
func (BusinessDTO) TableName() string {
	return "businesses"
}

// AddressDTO represents the embedded business address columns.
type AddressDTO struct {
	Street        string
	City          string
	StateProvince string
	ZipPostalCode string
	Country       string
}

func fromDomain(aggregate *business.Business) BusinessDTO {
	address := aggregate.Address()
	delivery := aggregate.Delivery()

	return BusinessDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Description: aggregate.Description(),
		Website:     aggregate.Website(),
		Phone:       aggregate.Phone(),
		Address: AddressDTO{
			Street:        address.Street(),
			City:          address.City(),
			StateProvince: address.StateProvince(),
			ZipPostalCode: address.ZipPostalCode(),
			Country:       address.Country(),
		},
		DeliveryRadius:      delivery.Radius(),
		DeliveryRadiusUnit:  delivery.RadiusUnit().String(),
		SpecialRequirements: delivery.SpecialRequirements(),
		OwnerUserID:         aggregate.OwnerUserID().Bytes(),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
	}
}

func toDomain(dto BusinessDTO) (*business.Business, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerUserID, err := kernel.UUIDFromBytes(dto.OwnerUserID[:])
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(
		dto.Address.Street,
		dto.Address.City,
		dto.Address.StateProvince,
		dto.Address.ZipPostalCode,
		dto.Address.Country,
	)
	if err != nil {
		return nil, err
	}

	unit, err := business.ParseRadiusUnit(dto.DeliveryRadiusUnit)
	if err != nil {
		return nil, err
	}

	delivery, err := business.NewDeliverySettings(dto.DeliveryRadius, unit, dto.SpecialRequirements)
	if err != nil {
		return nil, err
	}

	return business.RestoreBusiness(business.RestoreBusinessParams{
		ID:          id,
		Name:        dto.Name,
		Description: dto.Description,
		Website:     dto.Website,
		Phone:       dto.Phone,
		Address:     address,
		Delivery:    delivery,
		OwnerUserID: ownerUserID,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}), nil
}
