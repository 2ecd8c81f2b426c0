package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetBusinessOrdersQueryHandler lists a business's orders from the database.
type GetBusinessOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetBusinessOrdersQueryHandler creates a handler for business order listings.
func NewGetBusinessOrdersQueryHandler(db *gorm.DB) GetBusinessOrdersQueryHandler {
	return GetBusinessOrdersQueryHandler{db: db}
}

// Handle returns the matching orders, newest first.
func (h GetBusinessOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetBusinessOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE business_id = ?`
	args := []any{query.BusinessID().String()}

	if query.Status() != nil {
		sqlQuery += ` AND status = ?`
		args = append(args, query.Status().String())
	}
	if query.DriverID() != nil {
		sqlQuery += ` AND assigned_driver_id = ?`
		args = append(args, query.DriverID().String())
	}
	sqlQuery += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
