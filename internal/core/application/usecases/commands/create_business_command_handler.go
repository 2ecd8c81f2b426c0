package commands

import (
	"context"

	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/kernel"
)

// CreateBusinessCommandHandler registers a business tenant and its founding
// owner in one transaction, so no business ever exists without an active
// owner employee.
type CreateBusinessCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateBusinessCommandHandler creates a handler for business registration.
func NewCreateBusinessCommandHandler(uowFactory UoWFactory) CreateBusinessCommandHandler {
	return CreateBusinessCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the business and the acting user's owner membership,
// returning the new business id.
func (h CreateBusinessCommandHandler) Handle(ctx context.Context, cmd CreateBusinessCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	newBusiness, err := business.NewBusiness(business.NewBusinessParams{
		Name:        cmd.Name(),
		Description: cmd.Description(),
		Website:     cmd.Website(),
		Phone:       cmd.Phone(),
		Address:     cmd.Address(),
		Delivery:    cmd.Delivery(),
		OwnerUserID: cmd.Actor().UserID(),
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	owner, err := employee.NewEmployee(cmd.Actor().UserID(), newBusiness.ID(),
		[]employee.Role{employee.RoleOwner})
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BusinessRepository().Add(ctx, newBusiness); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.EmployeeRepository().Add(ctx, owner); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return newBusiness.ID(), nil
}
