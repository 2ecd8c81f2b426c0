package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/kernel"
)

// BusinessResponse is the read model returned by business queries.
type BusinessResponse struct {
	ID          kernel.UUID
	Name        string
	Description string
	Website     string
	Phone       string

	Street        string
	City          string
	StateProvince string
	ZipPostalCode string
	Country       string

	DeliveryRadius      int
	DeliveryRadiusUnit  business.RadiusUnit
	SpecialRequirements string

	OwnerUserID kernel.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GetBusinessesQueryHandler lists the businesses a user belongs to.
type GetBusinessesQueryHandler struct {
	db *gorm.DB
}

// NewGetBusinessesQueryHandler creates a handler for business listings.
func NewGetBusinessesQueryHandler(db *gorm.DB) GetBusinessesQueryHandler {
	return GetBusinessesQueryHandler{db: db}
}

// Handle returns every business the user holds a membership in, oldest
// first.
func (h GetBusinessesQueryHandler) Handle(
	ctx context.Context,
	query GetBusinessesQuery,
) ([]BusinessResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.id,
			b.name,
			b.description,
			b.website,
			b.phone,
			b.street,
			b.city,
			b.state_province,
			b.zip_postal_code,
			b.country,
			b.delivery_radius,
			b.delivery_radius_unit,
			b.special_requirements,
			b.owner_user_id,
			b.created_at,
			b.updated_at
		FROM businesses b
		JOIN employees e ON e.business_id = b.id
		WHERE e.user_id = ?
		ORDER BY b.created_at
	`, query.UserID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	businesses := make([]BusinessResponse, 0)
	for rows.Next() {
		var (
			resp        BusinessResponse
			id          uuid.UUID
			ownerUserID uuid.UUID
			radiusUnit  string
		)

		if err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Description,
			&resp.Website,
			&resp.Phone,
			&resp.Street,
			&resp.City,
			&resp.StateProvince,
			&resp.ZipPostalCode,
			&resp.Country,
			&resp.DeliveryRadius,
			&radiusUnit,
			&resp.SpecialRequirements,
			&ownerUserID,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OwnerUserID, err = kernel.UUIDFromBytes(ownerUserID[:]); err != nil {
			return nil, err
		}
		if resp.DeliveryRadiusUnit, err = business.ParseRadiusUnit(radiusUnit); err != nil {
			return nil, err
		}

		businesses = append(businesses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return businesses, nil
}
