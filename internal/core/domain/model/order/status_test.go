package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Next(t *testing.T) {
	t.Run("canonical forward chain has one deterministic successor per status", func(t *testing.T) {
		chain := map[order.Status]order.Status{
			order.Pending:         order.Confirmed,
			order.Confirmed:       order.Assigned,
			order.Assigned:        order.EnRoutePickup,
			order.EnRoutePickup:   order.PickedUp,
			order.PickedUp:        order.EnRouteDelivery,
			order.EnRouteDelivery: order.Delivered,
		}

		for from, want := range chain {
			next, ok := from.Next()
			require.True(t, ok, "expected successor for %s", from)
			assert.Equal(t, want, next)
		}
	})

	t.Run("terminal states have no successor", func(t *testing.T) {
		for _, s := range []order.Status{order.Delivered, order.Cancelled} {
			_, ok := s.Next()
			assert.False(t, ok, "%s should be terminal", s)
		}
	})

	t.Run("pure function yields same output on repeated calls", func(t *testing.T) {
		first, ok1 := order.PickedUp.Next()
		second, ok2 := order.PickedUp.Next()

		assert.Equal(t, ok1, ok2)
		assert.Equal(t, first, second)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("cancelled is reachable from every non-terminal status", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Confirmed, order.Assigned,
			order.EnRoutePickup, order.PickedUp, order.EnRouteDelivery,
		} {
			assert.True(t, s.CanTransitionTo(order.Cancelled), "expected %s -> cancelled", s)
		}
	})

	t.Run("terminal statuses cannot transition to cancelled", func(t *testing.T) {
		assert.False(t, order.Delivered.CanTransitionTo(order.Cancelled))
		assert.False(t, order.Cancelled.CanTransitionTo(order.Cancelled))
	})

	t.Run("delivered is reachable only from en_route_delivery", func(t *testing.T) {
		assert.True(t, order.EnRouteDelivery.CanTransitionTo(order.Delivered))

		for _, s := range []order.Status{
			order.Pending, order.Confirmed, order.Assigned,
			order.EnRoutePickup, order.PickedUp, order.Delivered, order.Cancelled,
		} {
			assert.False(t, s.CanTransitionTo(order.Delivered), "%s -> delivered must be rejected", s)
		}
	})

	t.Run("single-step forward progression only", func(t *testing.T) {
		assert.True(t, order.Pending.CanTransitionTo(order.Confirmed))

		// Skipping a step is rejected.
		assert.False(t, order.Pending.CanTransitionTo(order.Assigned))
		assert.False(t, order.Pending.CanTransitionTo(order.PickedUp))

		// Going backward is rejected.
		assert.False(t, order.Assigned.CanTransitionTo(order.Confirmed))
		assert.False(t, order.PickedUp.CanTransitionTo(order.EnRoutePickup))
	})

	t.Run("transitions out of terminal states are rejected", func(t *testing.T) {
		assert.False(t, order.Cancelled.CanTransitionTo(order.Pending))
		assert.False(t, order.Delivered.CanTransitionTo(order.EnRouteDelivery))
	})

	t.Run("repeated evaluation is stable", func(t *testing.T) {
		assert.Equal(t,
			order.Pending.CanTransitionTo(order.Confirmed),
			order.Pending.CanTransitionTo(order.Confirmed))
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("valid transition returns new status", func(t *testing.T) {
		next, err := order.Pending.TransitionTo(order.Confirmed)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, next)
	})

	t.Run("invalid transition carries the attempted pair", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.PickedUp)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)

		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.Pending, transitionErr.From)
		assert.Equal(t, order.PickedUp, transitionErr.To)
	})

	t.Run("invalid target status is rejected before policy check", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Unknown)
		require.Error(t, err)
	})
}

func TestStatus_CancellationPolicy(t *testing.T) {
	t.Run("customer can cancel only before pickup travel", func(t *testing.T) {
		allowed := []order.Status{order.Pending, order.Confirmed, order.Assigned}
		denied := []order.Status{
			order.EnRoutePickup, order.PickedUp, order.EnRouteDelivery,
			order.Delivered, order.Cancelled,
		}

		for _, s := range allowed {
			assert.True(t, s.CanCustomerCancel(), "customer should be able to cancel %s", s)
		}
		for _, s := range denied {
			assert.False(t, s.CanCustomerCancel(), "customer must not cancel %s", s)
		}
	})

	t.Run("business can cancel from every status", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			assert.True(t, s.CanBusinessCancel(), "business should be able to cancel %s", s)
		}
	})
}

func TestStatus_Registry(t *testing.T) {
	t.Run("all statuses carry metadata", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			require.NoError(t, s.Validate())
			assert.NotEmpty(t, s.String())
			assert.NotEmpty(t, s.Label())
			assert.NotEmpty(t, s.Description())
			assert.NotEmpty(t, s.Color())
		}
	})

	t.Run("wire names match canonical set", func(t *testing.T) {
		assert.Equal(t, "pending", order.Pending.String())
		assert.Equal(t, "en_route_pickup", order.EnRoutePickup.String())
		assert.Equal(t, "en_route_delivery", order.EnRouteDelivery.String())
		assert.Equal(t, "picked_up", order.PickedUp.String())
		assert.Equal(t, "cancelled", order.Cancelled.String())
	})

	t.Run("unknown status is invalid and has fallback name", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(99).Validate())
		assert.Equal(t, "unknown", order.Status(99).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every registry status", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unrecognized names", func(t *testing.T) {
		for _, name := range []string{"", "Pending", "shipped", "unknown"} {
			_, err := order.StatusFromString(name)
			require.Error(t, err, "expected error for %q", name)
		}
	})
}

func TestParseAction(t *testing.T) {
	t.Run("parses all known actions", func(t *testing.T) {
		for _, name := range []string{
			"confirm", "assign", "accept", "update_status",
			"picked_up", "en_route_delivery", "delivered", "cancel",
		} {
			a, err := order.ParseAction(name)
			require.NoError(t, err)
			assert.Equal(t, name, a.String())
		}
	})

	t.Run("rejects unknown actions", func(t *testing.T) {
		_, err := order.ParseAction("teleport")

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrUnsupportedAction)

		var unsupportedErr *order.UnsupportedActionError
		require.ErrorAs(t, err, &unsupportedErr)
		assert.Equal(t, "teleport", unsupportedErr.Action)
	})
}

func TestAction_TargetStatus(t *testing.T) {
	t.Run("fixed-target actions map to their status", func(t *testing.T) {
		targets := map[order.Action]order.Status{
			order.ActionConfirm:         order.Confirmed,
			order.ActionAssign:          order.Assigned,
			order.ActionAccept:          order.EnRoutePickup,
			order.ActionPickedUp:        order.PickedUp,
			order.ActionEnRouteDelivery: order.EnRouteDelivery,
			order.ActionDelivered:       order.Delivered,
			order.ActionCancel:          order.Cancelled,
		}

		for action, want := range targets {
			target, ok := action.TargetStatus()
			require.True(t, ok, "expected fixed target for %s", action)
			assert.Equal(t, want, target)
		}
	})

	t.Run("update_status has no fixed target", func(t *testing.T) {
		_, ok := order.ActionUpdateStatus.TargetStatus()
		assert.False(t, ok)
	})
}

func TestStatus_NextAction(t *testing.T) {
	t.Run("forward path actions", func(t *testing.T) {
		expected := map[order.Status]order.Action{
			order.Pending:         order.ActionConfirm,
			order.Confirmed:       order.ActionAssign,
			order.Assigned:        order.ActionAccept,
			order.EnRoutePickup:   order.ActionPickedUp,
			order.PickedUp:        order.ActionEnRouteDelivery,
			order.EnRouteDelivery: order.ActionDelivered,
		}

		for s, want := range expected {
			action, ok := s.NextAction()
			require.True(t, ok)
			assert.Equal(t, want, action)
		}
	})

	t.Run("terminal states have no next action", func(t *testing.T) {
		for _, s := range []order.Status{order.Delivered, order.Cancelled} {
			_, ok := s.NextAction()
			assert.False(t, ok)
		}
	})
}
