package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrEmployeeAlreadyExists is returned when the user already has a
// membership in the target business.
var ErrEmployeeAlreadyExists = errors.New("user is already an employee of this business")

// CreateEmployeeCommandHandler adds an employee membership to a business.
// Only an active owner of that business may add employees; a user holds at
// most one membership per business.
type CreateEmployeeCommandHandler struct {
	uowFactory EmployeeUoWFactory
}

// NewCreateEmployeeCommandHandler creates a handler for employee creation.
func NewCreateEmployeeCommandHandler(uowFactory EmployeeUoWFactory) CreateEmployeeCommandHandler {
	return CreateEmployeeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the membership and returns its id.
func (h CreateEmployeeCommandHandler) Handle(ctx context.Context, cmd CreateEmployeeCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	employeeRepo := uow.EmployeeRepository()

	actorMembership, err := employeeRepo.GetByUserAndBusiness(ctx, cmd.Actor().UserID(), cmd.BusinessID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return kernel.UUID{}, ErrAccessDenied
		}
		return kernel.UUID{}, err
	}
	if !actorMembership.IsActive() || !actorMembership.IsOwner() {
		return kernel.UUID{}, ErrAccessDenied
	}

	_, err = employeeRepo.GetByUserAndBusiness(ctx, cmd.UserID(), cmd.BusinessID())
	if err == nil {
		return kernel.UUID{}, ErrEmployeeAlreadyExists
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, err
	}

	newEmployee, err := employee.NewEmployee(cmd.UserID(), cmd.BusinessID(), cmd.Roles())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = employeeRepo.Add(ctx, newEmployee); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return newEmployee.ID(), nil
}
