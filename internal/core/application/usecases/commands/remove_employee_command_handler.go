package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// RemoveEmployeeCommandHandler removes an employee membership. Only an
// active owner of the business may remove employees, and a business can
// never be reduced below one active owner.
type RemoveEmployeeCommandHandler struct {
	uowFactory EmployeeUoWFactory
}

// NewRemoveEmployeeCommandHandler creates a handler for employee removal.
func NewRemoveEmployeeCommandHandler(uowFactory EmployeeUoWFactory) RemoveEmployeeCommandHandler {
	return RemoveEmployeeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes the membership.
//
// Error contract:
//   - ErrAccessDenied: actor is not an active owner of the business
//   - errs.ErrObjectNotFound: membership missing or in another business
//   - ErrLastOwner: removal would leave the business ownerless
func (h RemoveEmployeeCommandHandler) Handle(ctx context.Context, cmd RemoveEmployeeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	employeeRepo := uow.EmployeeRepository()

	actorMembership, err := employeeRepo.GetByUserAndBusiness(ctx, cmd.Actor().UserID(), cmd.BusinessID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrAccessDenied
		}
		return err
	}
	if !actorMembership.IsActive() || !actorMembership.IsOwner() {
		return ErrAccessDenied
	}

	target, err := employeeRepo.GetForBusiness(ctx, cmd.EmployeeID(), cmd.BusinessID())
	if err != nil {
		return err
	}

	if target.IsOwner() && target.IsActive() {
		activeOwners, err := employeeRepo.CountActiveOwners(ctx, cmd.BusinessID())
		if err != nil {
			return err
		}
		if activeOwners <= 1 {
			return ErrLastOwner
		}
	}

	if err = employeeRepo.Remove(ctx, target.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
