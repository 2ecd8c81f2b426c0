package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

func TestRemoveEmployeeCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	ownerUserID := kernel.NewUUID()
	owner := staffMember(ownerUserID, businessID, employee.RoleOwner)

	newCommand := func(t *testing.T, target kernel.UUID) commands.RemoveEmployeeCommand {
		t.Helper()
		cmd, err := commands.NewRemoveEmployeeCommand(testActor(t, ownerUserID), businessID, target)
		require.NoError(t, err)
		return cmd
	}

	t.Run("removes a driver", func(t *testing.T) {
		driver := staffMember(kernel.NewUUID(), businessID, employee.RoleDriver)
		cmd := newCommand(t, driver.ID())

		repo := new(MockEmployeeRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("EmployeeRepository").Return(repo).Once(),
			repo.On("GetByUserAndBusiness", mock.Anything, ownerUserID, businessID).
				Return(owner, nil).Once(),
			repo.On("GetForBusiness", mock.Anything, driver.ID(), businessID).
				Return(driver, nil).Once(),
			repo.On("Remove", mock.Anything, driver.ID()).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockEmployeeUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewRemoveEmployeeCommandHandler(factory)
		require.NoError(t, h.Handle(ctx, cmd))
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("refuses to remove the last active owner", func(t *testing.T) {
		cmd := newCommand(t, owner.ID())

		repo := new(MockEmployeeRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("EmployeeRepository").Return(repo).Once(),
			repo.On("GetByUserAndBusiness", mock.Anything, ownerUserID, businessID).
				Return(owner, nil).Once(),
			repo.On("GetForBusiness", mock.Anything, owner.ID(), businessID).
				Return(owner, nil).Once(),
			repo.On("CountActiveOwners", mock.Anything, businessID).
				Return(int64(1), nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockEmployeeUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewRemoveEmployeeCommandHandler(factory)
		err := h.Handle(ctx, cmd)
		assert.ErrorIs(t, err, commands.ErrLastOwner)
		repo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("removes an owner while another remains", func(t *testing.T) {
		secondOwner := staffMember(kernel.NewUUID(), businessID, employee.RoleOwner)
		cmd := newCommand(t, secondOwner.ID())

		repo := new(MockEmployeeRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("EmployeeRepository").Return(repo).Once(),
			repo.On("GetByUserAndBusiness", mock.Anything, ownerUserID, businessID).
				Return(owner, nil).Once(),
			repo.On("GetForBusiness", mock.Anything, secondOwner.ID(), businessID).
				Return(secondOwner, nil).Once(),
			repo.On("CountActiveOwners", mock.Anything, businessID).
				Return(int64(2), nil).Once(),
			repo.On("Remove", mock.Anything, secondOwner.ID()).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockEmployeeUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewRemoveEmployeeCommandHandler(factory)
		require.NoError(t, h.Handle(ctx, cmd))
	})

	t.Run("non-member is denied", func(t *testing.T) {
		cmd := newCommand(t, kernel.NewUUID())

		repo := new(MockEmployeeRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("EmployeeRepository").Return(repo).Once(),
			repo.On("GetByUserAndBusiness", mock.Anything, ownerUserID, businessID).
				Return(nil, errs.NewObjectNotFoundError("employee", ownerUserID)).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockEmployeeUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewRemoveEmployeeCommandHandler(factory)
		err := h.Handle(ctx, cmd)
		assert.ErrorIs(t, err, commands.ErrAccessDenied)
	})

	t.Run("driver cannot remove employees", func(t *testing.T) {
		driverActor := staffMember(ownerUserID, businessID, employee.RoleDriver)
		cmd := newCommand(t, kernel.NewUUID())

		repo := new(MockEmployeeRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("EmployeeRepository").Return(repo).Once(),
			repo.On("GetByUserAndBusiness", mock.Anything, ownerUserID, businessID).
				Return(driverActor, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockEmployeeUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewRemoveEmployeeCommandHandler(factory)
		err := h.Handle(ctx, cmd)
		assert.ErrorIs(t, err, commands.ErrAccessDenied)
	})
}
