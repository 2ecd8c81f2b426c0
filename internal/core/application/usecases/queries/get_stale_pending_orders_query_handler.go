package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// GetStalePendingOrdersQueryHandler finds orders stuck in pending status.
type GetStalePendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStalePendingOrdersQueryHandler creates a handler for stale order scans.
func NewGetStalePendingOrdersQueryHandler(db *gorm.DB) GetStalePendingOrdersQueryHandler {
	return GetStalePendingOrdersQueryHandler{db: db}
}

// Handle returns orders pending for longer than the query threshold, oldest
// first.
func (h GetStalePendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStalePendingOrdersQuery,
) ([]StalePendingOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-query.OlderThan())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			business_id,
			created_at
		FROM orders
		WHERE status = ? AND created_at < ?
		ORDER BY created_at
	`, order.Pending.String(), cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stale := make([]StalePendingOrderResponse, 0)
	for rows.Next() {
		var (
			resp       StalePendingOrderResponse
			id         uuid.UUID
			businessID uuid.UUID
		)

		if err = rows.Scan(&id, &resp.Number, &businessID, &resp.CreatedAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.BusinessID, err = kernel.UUIDFromBytes(businessID[:]); err != nil {
			return nil, err
		}

		stale = append(stale, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stale, nil
}
