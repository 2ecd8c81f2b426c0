package employeerepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// GormEmployeeRepository implements EmployeeRepository using GORM.
type GormEmployeeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormEmployeeRepository creates a new GORM employee repository.
func NewGormEmployeeRepository(db *gorm.DB, tracker aggregateTracker) *GormEmployeeRepository {
	return &GormEmployeeRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new employee membership to the database.
func (r *GormEmployeeRepository) Add(ctx context.Context, entity *employee.Employee) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// Update saves changes to an existing employee membership.
func (r *GormEmployeeRepository) Update(ctx context.Context, entity *employee.Employee) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	if err := r.db.WithContext(ctx).Save(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// Get retrieves an employee by ID.
func (r *GormEmployeeRepository) Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EmployeeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("employeeID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForBusiness retrieves an employee by ID scoped to one business. A hit in
// another business reads as not found so callers cannot probe cross-tenant.
func (r *GormEmployeeRepository) GetForBusiness(ctx context.Context, id, businessID kernel.UUID) (*employee.Employee, error) {
	if err := errors.Join(id.Validate(), businessID.Validate()); err != nil {
		return nil, err
	}

	var dto EmployeeDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND business_id = ?", id.Bytes(), businessID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("employeeID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByUserAndBusiness retrieves the membership linking a platform user to a
// business. Returns (nil, nil) when no membership exists; absence is a normal
// authorization outcome, not an error.
func (r *GormEmployeeRepository) GetByUserAndBusiness(ctx context.Context, userID, businessID kernel.UUID) (*employee.Employee, error) {
	if err := errors.Join(userID.Validate(), businessID.Validate()); err != nil {
		return nil, err
	}

	var dto EmployeeDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "user_id = ? AND business_id = ?", userID.Bytes(), businessID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	entity, err := toDomain(dto)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// GetAllForBusiness retrieves all employee memberships of a business, oldest
// first.
func (r *GormEmployeeRepository) GetAllForBusiness(ctx context.Context, businessID kernel.UUID) ([]*employee.Employee, error) {
	if err := businessID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EmployeeDTO
	if err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "business_id = ?", businessID.Bytes()).Error; err != nil {
		return nil, err
	}

	employees := make([]*employee.Employee, 0, len(dtos))
	for _, dto := range dtos {
		entity, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		employees = append(employees, entity)
	}
	return employees, nil
}

// CountActiveOwners counts active employees of a business holding the owner
// role.
func (r *GormEmployeeRepository) CountActiveOwners(ctx context.Context, businessID kernel.UUID) (int64, error) {
	if err := businessID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&EmployeeDTO{}).
		Where("business_id = ? AND status = ? AND ? = ANY(roles)",
			businessID.Bytes(), employee.StatusActive.String(), employee.RoleOwner.String()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Remove deletes an employee membership.
func (r *GormEmployeeRepository) Remove(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&EmployeeDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("employeeID", id.String())
	}
	return nil
}
