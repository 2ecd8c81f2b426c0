// Package employeerepo provides data transfer objects and mapping functions
// for employee persistence.
package employeerepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/kernel"
)

// EmployeeDTO represents the database structure for persisting employee
// memberships. Roles are stored as a Postgres text array so role checks can
// run directly in SQL.
type EmployeeDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID      `gorm:"type:uuid;index:idx_employees_user_business,unique"`
	BusinessID uuid.UUID      `gorm:"type:uuid;index:idx_employees_user_business,unique"`
	Roles      pq.StringArray `gorm:"type:text[]"`
	Status     string         `gorm:"type:varchar(32);index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime:false"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for employee entities.
func (EmployeeDTO) TableName() string {
	return "employees"
}

func fromDomain(entity *employee.Employee) EmployeeDTO {
	roles := entity.Roles()
	names := make(pq.StringArray, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}

	return EmployeeDTO{
		ID:         entity.ID().Bytes(),
		UserID:     entity.UserID().Bytes(),
		BusinessID: entity.BusinessID().Bytes(),
		Roles:      names,
		Status:     entity.Status().String(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}
}

func toDomain(dto EmployeeDTO) (*employee.Employee, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	roles := make([]employee.Role, 0, len(dto.Roles))
	for _, name := range dto.Roles {
		role, err := employee.ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	status, err := employee.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return employee.RestoreEmployee(id, userID, businessID, roles, status, dto.CreatedAt, dto.UpdatedAt), nil
}
