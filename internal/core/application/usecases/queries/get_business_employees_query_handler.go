package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/kernel"
)

// GetBusinessEmployeesQueryHandler lists a business's employee memberships.
type GetBusinessEmployeesQueryHandler struct {
	db *gorm.DB
}

// NewGetBusinessEmployeesQueryHandler creates a handler for employee listings.
func NewGetBusinessEmployeesQueryHandler(db *gorm.DB) GetBusinessEmployeesQueryHandler {
	return GetBusinessEmployeesQueryHandler{db: db}
}

// Handle returns the memberships, oldest first so owners appear on top.
func (h GetBusinessEmployeesQueryHandler) Handle(
	ctx context.Context,
	query GetBusinessEmployeesQuery,
) ([]EmployeeResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			business_id,
			roles,
			status,
			created_at,
			updated_at
		FROM employees
		WHERE business_id = ?
		ORDER BY created_at
	`, query.BusinessID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]EmployeeResponse, 0)
	for rows.Next() {
		var (
			resp       EmployeeResponse
			id         uuid.UUID
			userID     uuid.UUID
			businessID uuid.UUID
			roles      pq.StringArray
			status     string
		)

		if err = rows.Scan(
			&id,
			&userID,
			&businessID,
			&roles,
			&status,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		if resp.BusinessID, err = kernel.UUIDFromBytes(businessID[:]); err != nil {
			return nil, err
		}

		resp.Roles = make([]employee.Role, 0, len(roles))
		for _, role := range roles {
			parsed, roleErr := employee.ParseRole(role)
			if roleErr != nil {
				return nil, roleErr
			}
			resp.Roles = append(resp.Roles, parsed)
		}

		parsedStatus, statusErr := employee.ParseStatus(status)
		if statusErr != nil {
			return nil, statusErr
		}
		resp.Status = parsedStatus

		employees = append(employees, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}
