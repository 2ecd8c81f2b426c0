// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain aggregates and read projection rows
// directly, so list endpoints stay cheap.
package queries

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderResponse is the read model returned by order queries. Number is a
// human-friendly display sequence assigned by the database; it never
// participates in domain logic.
type OrderResponse struct {
	ID         kernel.UUID
	Number     int64
	BusinessID kernel.UUID
	Status     order.Status

	AssignedDriverID *kernel.UUID

	CustomerID    *kernel.UUID
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Street        string
	City          string
	StateProvince string
	ZipPostalCode string
	Country       string

	OrderDetails        string
	SpecialInstructions string
	TotalAmount         float64

	EstimatedDeliveryTime *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	ConfirmedAt           *time.Time
	DeliveredAt           *time.Time

	DeliveryPhoto string
}

// orderColumns is the shared select list scanned by scanOrderRow. Keep in
// sync with the orders table layout in the postgres adapter.
const orderColumns = `
	id,
	number,
	business_id,
	status,
	assigned_driver_id,
	customer_id,
	customer_name,
	customer_phone,
	customer_email,
	street,
	city,
	state_province,
	zip_postal_code,
	country,
	order_details,
	special_instructions,
	total_amount,
	estimated_delivery_time,
	created_at,
	updated_at,
	confirmed_at,
	delivered_at,
	delivery_photo`

// qualifiedOrderColumns prefixes every order column with a table alias for
// use in joined queries.
func qualifiedOrderColumns(alias string) string {
	return strings.ReplaceAll(orderColumns, "\n\t", "\n\t"+alias+".")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderRow(row rowScanner) (OrderResponse, error) {
	var (
		resp             OrderResponse
		id               uuid.UUID
		businessID       uuid.UUID
		status           string
		assignedDriverID uuid.NullUUID
		customerID       uuid.NullUUID
		customerName     sql.NullString
		customerPhone    sql.NullString
		customerEmail    sql.NullString
		specialNotes     sql.NullString
		estimatedTime    sql.NullTime
		confirmedAt      sql.NullTime
		deliveredAt      sql.NullTime
		deliveryPhoto    sql.NullString
	)

	if err := row.Scan(
		&id,
		&resp.Number,
		&businessID,
		&status,
		&assignedDriverID,
		&customerID,
		&customerName,
		&customerPhone,
		&customerEmail,
		&resp.Street,
		&resp.City,
		&resp.StateProvince,
		&resp.ZipPostalCode,
		&resp.Country,
		&resp.OrderDetails,
		&specialNotes,
		&resp.TotalAmount,
		&estimatedTime,
		&resp.CreatedAt,
		&resp.UpdatedAt,
		&confirmedAt,
		&deliveredAt,
		&deliveryPhoto,
	); err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.ID = orderID

	ownerID, err := kernel.UUIDFromBytes(businessID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.BusinessID = ownerID

	parsedStatus, err := order.StatusFromString(status)
	if err != nil {
		return OrderResponse{}, err
	}
	resp.Status = parsedStatus

	if assignedDriverID.Valid {
		driverID, idErr := kernel.UUIDFromBytes(assignedDriverID.UUID[:])
		if idErr != nil {
			return OrderResponse{}, idErr
		}
		resp.AssignedDriverID = &driverID
	}
	if customerID.Valid {
		custID, idErr := kernel.UUIDFromBytes(customerID.UUID[:])
		if idErr != nil {
			return OrderResponse{}, idErr
		}
		resp.CustomerID = &custID
	}

	resp.CustomerName = customerName.String
	resp.CustomerPhone = customerPhone.String
	resp.CustomerEmail = customerEmail.String
	resp.SpecialInstructions = specialNotes.String
	resp.DeliveryPhoto = deliveryPhoto.String

	if estimatedTime.Valid {
		t := estimatedTime.Time
		resp.EstimatedDeliveryTime = &t
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		resp.ConfirmedAt = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		resp.DeliveredAt = &t
	}

	return resp, nil
}
