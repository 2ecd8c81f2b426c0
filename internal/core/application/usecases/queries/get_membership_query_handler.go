package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// GetMembershipQueryHandler resolves a user's membership row.
type GetMembershipQueryHandler struct {
	db *gorm.DB
}

// NewGetMembershipQueryHandler creates a handler for membership lookups.
func NewGetMembershipQueryHandler(db *gorm.DB) GetMembershipQueryHandler {
	return GetMembershipQueryHandler{db: db}
}

// Handle returns the membership or errs.ObjectNotFoundError.
func (h GetMembershipQueryHandler) Handle(
	ctx context.Context,
	query GetMembershipQuery,
) (EmployeeResponse, error) {
	if err := query.Validate(); err != nil {
		return EmployeeResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			business_id,
			roles,
			status,
			created_at,
			updated_at
		FROM employees
		WHERE user_id = ? AND business_id = ?
	`, query.UserID().String(), query.BusinessID().String()).Row()

	var (
		resp       EmployeeResponse
		id         uuid.UUID
		userID     uuid.UUID
		businessID uuid.UUID
		roles      pq.StringArray
		status     string
	)

	err := row.Scan(&id, &userID, &businessID, &roles, &status, &resp.CreatedAt, &resp.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return EmployeeResponse{}, errs.NewObjectNotFoundError("employee", query.UserID())
	}
	if err != nil {
		return EmployeeResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return EmployeeResponse{}, err
	}
	if resp.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return EmployeeResponse{}, err
	}
	if resp.BusinessID, err = kernel.UUIDFromBytes(businessID[:]); err != nil {
		return EmployeeResponse{}, err
	}

	resp.Roles = make([]employee.Role, 0, len(roles))
	for _, role := range roles {
		parsed, roleErr := employee.ParseRole(role)
		if roleErr != nil {
			return EmployeeResponse{}, roleErr
		}
		resp.Roles = append(resp.Roles, parsed)
	}

	parsedStatus, statusErr := employee.ParseStatus(status)
	if statusErr != nil {
		return EmployeeResponse{}, statusErr
	}
	resp.Status = parsedStatus

	return resp, nil
}
