package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

func TestNewTransitionOrderCommand(t *testing.T) {
	actor := testActor(t, kernel.NewUUID())

	t.Run("creates command for a plain action", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewTransitionOrderCommand(commands.TransitionOrderParams{
			OrderID: orderID,
			Action:  order.ActionConfirm,
			Actor:   actor,
		})
		require.NoError(t, err)

		assert.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.Equal(t, order.ActionConfirm, cmd.Action())
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(commands.TransitionOrderParams{
			OrderID: kernel.NewUUID(),
			Action:  "teleport",
			Actor:   actor,
		})
		assert.ErrorIs(t, err, order.ErrUnsupportedAction)
	})

	t.Run("assign requires a driver id", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(commands.TransitionOrderParams{
			OrderID: kernel.NewUUID(),
			Action:  order.ActionAssign,
			Actor:   actor,
		})
		assert.ErrorIs(t, err, commands.ErrDriverIDIsRequired)
	})

	t.Run("update_status requires a target status", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(commands.TransitionOrderParams{
			OrderID: kernel.NewUUID(),
			Action:  order.ActionUpdateStatus,
			Actor:   actor,
		})
		assert.ErrorIs(t, err, commands.ErrTargetStatusIsRequired)
	})

	t.Run("rejects unconstructed actor", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(commands.TransitionOrderParams{
			OrderID: kernel.NewUUID(),
			Action:  order.ActionConfirm,
		})
		assert.ErrorIs(t, err, commands.ErrActorIsNotConstructed)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.TransitionOrderCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrTransitionOrderCommandIsNotConstructed)
	})
}
