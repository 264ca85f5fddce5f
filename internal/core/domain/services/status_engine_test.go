package services_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 2, 11, 0, 0, 0, time.UTC)

func newEngine() services.StatusEngine {
	return services.NewStatusEngine(services.WithClock(func() time.Time { return fixedNow }))
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()

	item := func(product string, g order.GroupType, supplier string) *order.LineItem {
		li, err := order.NewLineItem(kernel.NewUUID(), product, g, supplier, 10, nil)
		require.NoError(t, err)
		return li
	}

	o, err := order.NewOrder(kernel.NewUUID(), "ORD-2001", "Northwind Construction", "Block C", []*order.LineItem{
		item("Anchor bolts", order.Hardware, ""),
		item("Steel frame", order.Workshop, ""),
		item("Cement", order.LPO, "S1"),
		item("Aggregate", order.LPO, "S2"),
		item("Glass panels", order.Custom, ""),
	}, fixedNow)
	require.NoError(t, err)
	return o
}

func statusOf(t *testing.T, o *order.Order, ref order.GroupRef) order.Status {
	t.Helper()
	s, err := o.StatusOf(ref)
	require.NoError(t, err)
	return s
}

var (
	hardware = order.MustGroupRef(order.Hardware, "")
	workshop = order.MustGroupRef(order.Workshop, "")
	custom   = order.MustGroupRef(order.Custom, "")
	lpoS1    = order.MustGroupRef(order.LPO, "S1")
)

func TestStatusEngine_DeriveLpoAggregate(t *testing.T) {
	engine := newEngine()

	assert.Equal(t, order.Rejected, engine.DeriveLpoAggregate(map[string]order.Status{
		"S1": order.Approved, "S2": order.Rejected, "S3": order.Pending,
	}))
	assert.Equal(t, order.Pending, engine.DeriveLpoAggregate(map[string]order.Status{
		"S1": order.Approved, "S2": order.Pending,
	}))
	assert.Equal(t, order.Approved, engine.DeriveLpoAggregate(map[string]order.Status{"S1": order.Approved}))
	assert.Equal(t, order.Pending, engine.DeriveLpoAggregate(nil))
}

func TestStatusEngine_RequestTransition(t *testing.T) {
	t.Run("plain status applies immediately", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)

		outcome, err := engine.RequestTransition(o, order.TransitionRequest{Group: custom, Target: order.Approved})

		require.NoError(t, err)
		assert.True(t, outcome.IsApplied())
		assert.Equal(t, order.Pending, outcome.From())
		assert.Equal(t, order.Approved, outcome.Status())
		assert.Equal(t, order.Approved, statusOf(t, o, custom))
	})

	t.Run("hardware cannot be in transit", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)

		_, err := engine.RequestTransition(o, order.TransitionRequest{Group: hardware, Target: order.InTransit})

		require.ErrorIs(t, err, order.ErrInvalidStatusForGroup)
		assert.Equal(t, order.Pending, statusOf(t, o, hardware))
	})

	t.Run("every other group may go in transit", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)

		for _, ref := range []order.GroupRef{workshop, custom, lpoS1} {
			outcome, err := engine.RequestTransition(o, order.TransitionRequest{Group: ref, Target: order.InTransit})
			require.NoError(t, err, ref.String())
			assert.True(t, outcome.IsAwaitingDetails(), ref.String())
		}
	})

	t.Run("unknown supplier", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)

		_, err := engine.RequestTransition(o, order.TransitionRequest{
			Group:  order.MustGroupRef(order.LPO, "S9"),
			Target: order.Approved,
		})

		require.ErrorIs(t, err, order.ErrUnknownSupplier)
		assert.Equal(t, map[string]order.Status{"S1": order.Pending, "S2": order.Pending}, o.SupplierStatuses())
	})

	t.Run("rejection requires a note", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)

		_, err := engine.RequestTransition(o, order.TransitionRequest{
			Group:   workshop,
			Target:  order.Rejected,
			Payload: order.TransitionPayload{Note: "  \t"},
		})

		require.ErrorIs(t, err, order.ErrMissingRejectionNote)
		assert.Equal(t, order.Pending, statusOf(t, o, workshop))
		assert.Empty(t, o.Rejections())
	})

	t.Run("rejection records the note", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)

		outcome, err := engine.RequestTransition(o, order.TransitionRequest{
			Group:   workshop,
			Target:  order.Rejected,
			Payload: order.TransitionPayload{Note: "weld defects"},
		})

		require.NoError(t, err)
		assert.Equal(t, order.Rejected, outcome.Status())
		r, ok := o.Rejection(workshop)
		require.True(t, ok)
		assert.Equal(t, "weld defects", r.Note())
		assert.Equal(t, fixedNow, r.RecordedAt())
	})

	t.Run("dispatch phase without details is held", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)

		outcome, err := engine.RequestTransition(o, order.TransitionRequest{Group: lpoS1, Target: order.OutForDelivery})

		require.NoError(t, err)
		assert.True(t, outcome.IsAwaitingDetails())
		assert.Equal(t, order.Pending, outcome.Status())
		hold, ok := outcome.Pending()
		require.True(t, ok)
		assert.True(t, hold.OrderID().IsEqual(o.ID()))
		assert.Equal(t, lpoS1, hold.Group())
		assert.Equal(t, order.OutForDelivery, hold.Target())
		assert.Equal(t, order.Pending, hold.From())
		assert.Equal(t, fixedNow, hold.RequestedAt())

		assert.Equal(t, order.Pending, statusOf(t, o, lpoS1))
		_, recorded := o.DriverDetailsFor(lpoS1, order.OutForDelivery)
		assert.False(t, recorded)
	})

	t.Run("dispatch phase with full details applies atomically", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)

		outcome, err := engine.RequestTransition(o, order.TransitionRequest{
			Group:   custom,
			Target:  order.InTransit,
			Payload: order.TransitionPayload{DriverName: " Ravi ", VehicleNumber: "TN09 AX 4410"},
		})

		require.NoError(t, err)
		assert.True(t, outcome.IsApplied())
		assert.Equal(t, order.InTransit, statusOf(t, o, custom))
		d, ok := o.DriverDetailsFor(custom, order.InTransit)
		require.True(t, ok)
		assert.Equal(t, "Ravi", d.DriverName())
	})

	t.Run("dispatch phase with partial details fails", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)

		_, err := engine.RequestTransition(o, order.TransitionRequest{
			Group:   custom,
			Target:  order.InTransit,
			Payload: order.TransitionPayload{DriverName: "Ravi"},
		})

		require.ErrorIs(t, err, order.ErrMissingDriverDetails)
		assert.Equal(t, order.Pending, statusOf(t, o, custom))
	})

	t.Run("stale current status conflicts", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)
		require.NoError(t, o.ChangeStatus(custom, order.Approved, fixedNow))

		_, err := engine.RequestTransition(o, order.TransitionRequest{
			Group:   custom,
			Current: order.Pending,
			Target:  order.Delivered,
		})

		require.ErrorIs(t, err, order.ErrStatusConflict)
		assert.Equal(t, order.Approved, statusOf(t, o, custom))
	})

	t.Run("invalid target", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)

		_, err := engine.RequestTransition(o, order.TransitionRequest{Group: custom, Target: order.Status(42)})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("failure in one group leaves the others alone", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)
		_, err := engine.RequestTransition(o, order.TransitionRequest{Group: custom, Target: order.Approved})
		require.NoError(t, err)

		_, err = engine.RequestTransition(o, order.TransitionRequest{Group: hardware, Target: order.InTransit})
		require.Error(t, err)

		assert.Equal(t, order.Approved, statusOf(t, o, custom))
		assert.Equal(t, order.Pending, statusOf(t, o, hardware))
	})
}

func TestStatusEngine_ConfirmDriverDetails(t *testing.T) {
	hold := func(t *testing.T, engine services.StatusEngine, o *order.Order, ref order.GroupRef, target order.Status) order.PendingTransition {
		t.Helper()
		outcome, err := engine.RequestTransition(o, order.TransitionRequest{Group: ref, Target: target})
		require.NoError(t, err)
		p, ok := outcome.Pending()
		require.True(t, ok)
		return p
	}

	t.Run("applies the held target", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)
		p := hold(t, engine, o, lpoS1, order.InTransit)

		outcome, err := engine.ConfirmDriverDetails(o, p, "John Doe", "KA01AB1234")

		require.NoError(t, err)
		assert.True(t, outcome.IsApplied())
		assert.Equal(t, order.InTransit, outcome.Status())
		assert.Equal(t, order.InTransit, statusOf(t, o, lpoS1))
		d, ok := o.DriverDetailsFor(lpoS1, order.InTransit)
		require.True(t, ok)
		assert.Equal(t, "John Doe", d.DriverName())
		assert.Equal(t, "KA01AB1234", d.VehicleNumber())
	})

	t.Run("blank fields are rejected", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)
		p := hold(t, engine, o, workshop, order.OutForDelivery)

		for _, tc := range []struct{ name, vehicle string }{
			{"", "KA01"},
			{"John", "   "},
			{" ", ""},
		} {
			_, err := engine.ConfirmDriverDetails(o, p, tc.name, tc.vehicle)
			require.ErrorIs(t, err, order.ErrMissingDriverDetails)
		}
		assert.Equal(t, order.Pending, statusOf(t, o, workshop))
	})

	t.Run("hold from another order", func(t *testing.T) {
		engine := newEngine()
		p := hold(t, engine, newOrder(t), lpoS1, order.InTransit)

		_, err := engine.ConfirmDriverDetails(newOrder(t), p, "John", "KA01")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("status moved while the hold was open", func(t *testing.T) {
		engine := newEngine()
		o := newOrder(t)
		p := hold(t, engine, o, custom, order.InTransit)
		require.NoError(t, o.ChangeStatus(custom, order.Cancelled, fixedNow))

		_, err := engine.ConfirmDriverDetails(o, p, "John", "KA01")

		require.ErrorIs(t, err, order.ErrStatusConflict)
		assert.Equal(t, order.Cancelled, statusOf(t, o, custom))
	})

	t.Run("zero hold", func(t *testing.T) {
		_, err := newEngine().ConfirmDriverDetails(newOrder(t), order.PendingTransition{}, "John", "KA01")
		require.ErrorIs(t, err, order.ErrPendingTransitionIsNotConstructed)
	})
}
