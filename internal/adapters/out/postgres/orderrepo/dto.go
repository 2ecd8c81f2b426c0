// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Number is a display sequence assigned by the database on insert; the domain
// never reads it back. Status is stored as its wire name so the read-model
// queries and ad-hoc SQL stay legible.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number           int64      `gorm:"autoIncrement;uniqueIndex"`
	BusinessID       uuid.UUID  `gorm:"type:uuid;index"`
	Status           string     `gorm:"type:varchar(32);index"`
	AssignedDriverID *uuid.UUID `gorm:"type:uuid;index"`

	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Address AddressDTO `gorm:"embedded"`

	OrderDetails        string
	SpecialInstructions string
	TotalAmount         float64

	EstimatedDeliveryTime *time.Time
	CreatedAt             time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime:false"`
	ConfirmedAt           *time.Time
	DeliveredAt           *time.Time

	DeliveryPhoto string
	DriverLat     *float64
	DriverLon     *float64
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery address columns within the
// orders table.
type AddressDTO struct {
	Street        string
	City          string
	StateProvince string
	ZipPostalCode string
	Country       string
}

// fromDomain converts an order domain aggregate to its database
// representation. Number is deliberately left zero; the database assigns it.
func fromDomain(aggregate *order.Order) OrderDTO {
	var assignedDriverID *uuid.UUID
	if id := aggregate.AssignedDriverID(); id != nil {
		raw := id.Bytes()
		assignedDriverID = &raw
	}

	var customerID *uuid.UUID
	if id := aggregate.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	var driverLat, driverLon *float64
	if loc := aggregate.DriverLocation(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		driverLat, driverLon = &lat, &lon
	}

	address := aggregate.DeliveryAddress()

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		BusinessID:       aggregate.BusinessID().Bytes(),
		Status:           aggregate.Status().String(),
		AssignedDriverID: assignedDriverID,
		CustomerID:       customerID,
		CustomerName:     aggregate.CustomerName(),
		CustomerPhone:    aggregate.CustomerPhone(),
		CustomerEmail:    aggregate.CustomerEmail(),
		Address: AddressDTO{
			Street:        address.Street(),
			City:          address.City(),
			StateProvince: address.StateProvince(),
			ZipPostalCode: address.ZipPostalCode(),
			Country:       address.Country(),
		},
		OrderDetails:          aggregate.OrderDetails(),
		SpecialInstructions:   aggregate.SpecialInstructions(),
		TotalAmount:           aggregate.TotalAmount(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
		ConfirmedAt:           aggregate.ConfirmedAt(),
		DeliveredAt:           aggregate.DeliveredAt(),
		DeliveryPhoto:         aggregate.DeliveryPhoto(),
		DriverLat:             driverLat,
		DriverLon:             driverLon,
	}
}

// toDomain converts a database DTO back to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var assignedDriverID *kernel.UUID
	if dto.AssignedDriverID != nil {
		driverID, idErr := kernel.UUIDFromBytes((*dto.AssignedDriverID)[:])
		if idErr != nil {
			return nil, idErr
		}
		assignedDriverID = &driverID
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		custID, idErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if idErr != nil {
			return nil, idErr
		}
		customerID = &custID
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

	var driverLocation *kernel.GeoLocation
	if dto.DriverLat != nil && dto.DriverLon != nil {
		location, locErr := kernel.NewGeoLocation(*dto.DriverLat, *dto.DriverLon)
		if locErr != nil {
			return nil, locErr
		}
		driverLocation = &location
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                    id,
		BusinessID:            businessID,
		Status:                status,
		AssignedDriverID:      assignedDriverID,
		CustomerID:            customerID,
		CustomerName:          dto.CustomerName,
		CustomerPhone:         dto.CustomerPhone,
		CustomerEmail:         dto.CustomerEmail,
		DeliveryAddress:       address,
		OrderDetails:          dto.OrderDetails,
		SpecialInstructions:   dto.SpecialInstructions,
		TotalAmount:           dto.TotalAmount,
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
		ConfirmedAt:           dto.ConfirmedAt,
		DeliveredAt:           dto.DeliveredAt,
		DeliveryPhoto:         dto.DeliveryPhoto,
		DriverLocation:        driverLocation,
	})
}
