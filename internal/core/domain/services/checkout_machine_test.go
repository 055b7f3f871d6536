package services_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipping"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine(t *testing.T, methods []*shipping.Method, opts ...services.CheckoutMachineOption) *services.CheckoutMachine {
	t.Helper()
	estimator, err := services.NewShippingRateEstimator(methods)
	require.NoError(t, err)
	machine, err := services.NewCheckoutMachine(estimator, nil, opts...)
	require.NoError(t, err)
	return machine
}

func advanceToStage(t *testing.T, machine *services.CheckoutMachine, o *order.Order, target order.Stage) {
	t.Helper()
	for o.Stage() != target {
		require.NoError(t, machine.Advance(context.Background(), o))
	}
}

func TestCheckoutMachine_Advance(t *testing.T) {
	ctx := context.Background()
	categoryID := kernel.NewUUID()

	t.Run("cart advances to address without guards", func(t *testing.T) {
		machine := newMachine(t, nil)
		o := newDeliveryOrder(t, categoryID)

		require.NoError(t, machine.Advance(ctx, o))

		assert.Equal(t, order.StageAddress, o.Stage())
	})

	t.Run("delivery entry builds a shipment with the cheapest rate selected", func(t *testing.T) {
		express := flatRateMethod(t, "UPS Express", "150", categoryID)
		ground := flatRateMethod(t, "UPS Ground", "50", categoryID)
		machine := newMachine(t, []*shipping.Method{express, ground})
		o := newDeliveryOrder(t, categoryID)
		advanceToStage(t, machine, o, order.StageAddress)

		require.NoError(t, machine.Advance(ctx, o))

		assert.Equal(t, order.StageDelivery, o.Stage())
		require.Len(t, o.Shipments(), 1)
		rates := o.Shipments()[0].Rates()
		require.Len(t, rates, 2)
		assert.Equal(t, "UPS Ground", rates[0].MethodName())
		assert.True(t, rates[0].Cost().IsEqual(money(t, "50", "USD")))
		assert.True(t, rates[0].IsSelected())
		assert.False(t, rates[1].IsSelected())

		selected := o.Shipments()[0].SelectedRate()
		require.NotNil(t, selected)
		assert.True(t, selected.MethodID().IsEqual(ground.ID()))
	})

	t.Run("single matching method still yields a selected rate", func(t *testing.T) {
		ground := flatRateMethod(t, "UPS Ground", "50", categoryID)
		machine := newMachine(t, []*shipping.Method{ground})
		o := newDeliveryOrder(t, categoryID)
		advanceToStage(t, machine, o, order.StageAddress)

		require.NoError(t, machine.Advance(ctx, o))

		require.Len(t, o.Shipments(), 1)
		require.Len(t, o.Shipments()[0].Rates(), 1)
		assert.True(t, o.Shipments()[0].Rates()[0].IsSelected())
	})

	t.Run("missing shipping address vetoes the delivery transition", func(t *testing.T) {
		machine := newMachine(t, []*shipping.Method{flatRateMethod(t, "UPS Ground", "50", categoryID)})
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USD", time.Now())
		require.NoError(t, err)
		require.NoError(t, machine.Advance(ctx, o))

		err = machine.Advance(ctx, o)

		require.ErrorIs(t, err, services.ErrGuardFailed)
		assert.Equal(t, order.StageAddress, o.Stage())
		assert.Equal(t, []string{"order has no shipping address"}, o.GuardMessages())
	})

	t.Run("no zone coverage vetoes and leaves the stage unchanged", func(t *testing.T) {
		calc, err := shipping.NewFlatRateCalculator(money(t, "50", "USD"))
		require.NoError(t, err)
		zone, err := shipping.NewZone("India", []shipping.ZoneMember{{Country: "IN"}})
		require.NoError(t, err)
		method, err := shipping.NewMethod(kernel.NewUUID(), "India Post",
			[]kernel.UUID{categoryID}, []shipping.Zone{zone}, nil, calc)
		require.NoError(t, err)

		machine := newMachine(t, []*shipping.Method{method})
		o := newDeliveryOrder(t, categoryID)
		advanceToStage(t, machine, o, order.StageAddress)

		err = machine.Advance(ctx, o)

		require.ErrorIs(t, err, services.ErrGuardFailed)
		var guardErr *services.GuardError
		require.ErrorAs(t, err, &guardErr)
		assert.Equal(t, "ensure_available_shipping_rates", guardErr.Guard)
		assert.Equal(t, order.StageAddress, o.Stage())
		assert.Equal(t, []string{"unable to calculate shipping rates for this order"}, o.GuardMessages())
	})

	t.Run("currency mismatch leaves no usable rates", func(t *testing.T) {
		usdOnly := flatRateMethod(t, "UPS Ground", "50", categoryID)
		machine := newMachine(t, []*shipping.Method{usdOnly})
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "INR", time.Now())
		require.NoError(t, err)
		item, err := order.NewLineItem(
			kernel.NewUUID(), "SKU-001", 1, money(t, "25", "INR"), categoryID)
		require.NoError(t, err)
		require.NoError(t, o.AddLineItem(item))
		require.NoError(t, o.SetShippingAddress(usAddress(t)))
		advanceToStage(t, machine, o, order.StageAddress)

		err = machine.Advance(ctx, o)

		require.ErrorIs(t, err, services.ErrGuardFailed)
		assert.Equal(t, order.StageAddress, o.Stage())
	})

	t.Run("terminal order cannot advance", func(t *testing.T) {
		machine := newMachine(t, []*shipping.Method{flatRateMethod(t, "UPS Ground", "50", categoryID)})
		o := newDeliveryOrder(t, categoryID)
		advanceToStage(t, machine, o, order.StageComplete)

		err := machine.Advance(ctx, o)

		require.ErrorIs(t, err, services.ErrInvalidTransition)
		var transitionErr *services.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.StageComplete, transitionErr.Stage)
	})

	t.Run("re-entering delivery rebuilds shipments from scratch", func(t *testing.T) {
		ground := flatRateMethod(t, "UPS Ground", "50", categoryID)
		machine := newMachine(t, []*shipping.Method{ground})
		o := newDeliveryOrder(t, categoryID)
		advanceToStage(t, machine, o, order.StageDelivery)
		staleID := o.Shipments()[0].ID()

		restored, err := order.RestoreOrder(o.ID(), o.StoreID(), o.Currency(), order.StageAddress,
			o.CreatedAt(), o.LineItems(), o.ShippingAddress(), nil, o.Shipments())
		require.NoError(t, err)

		require.NoError(t, machine.Advance(ctx, restored))

		require.Len(t, restored.Shipments(), 1)
		assert.False(t, restored.Shipments()[0].ID().IsEqual(staleID))
	})

	t.Run("calculator faults abort without recording guard messages", func(t *testing.T) {
		method, err := shipping.NewMethod(kernel.NewUUID(), "Broken",
			[]kernel.UUID{categoryID}, []shipping.Zone{usZone(t)}, nil, brokenCalculator{})
		require.NoError(t, err)
		machine := newMachine(t, []*shipping.Method{method})
		o := newDeliveryOrder(t, categoryID)
		advanceToStage(t, machine, o, order.StageAddress)

		err = machine.Advance(ctx, o)

		require.ErrorIs(t, err, shipping.ErrCalculator)
		assert.NotErrorIs(t, err, services.ErrGuardFailed)
		assert.Equal(t, order.StageAddress, o.Stage())
		assert.Empty(t, o.GuardMessages())
	})

	t.Run("custom guards run after the built-in chain", func(t *testing.T) {
		ground := flatRateMethod(t, "UPS Ground", "50", categoryID)
		veto := services.TransitionGuard{
			Name: "ensure_inventory",
			Check: func(context.Context, *order.Order) ([]string, error) {
				return []string{"item is out of stock"}, nil
			},
		}
		machine := newMachine(t, []*shipping.Method{ground},
			services.WithGuard(order.StageDelivery, veto))
		o := newDeliveryOrder(t, categoryID)
		advanceToStage(t, machine, o, order.StageAddress)

		err := machine.Advance(ctx, o)

		require.ErrorIs(t, err, services.ErrGuardFailed)
		var guardErr *services.GuardError
		require.ErrorAs(t, err, &guardErr)
		assert.Equal(t, "ensure_inventory", guardErr.Guard)
		assert.Equal(t, order.StageAddress, o.Stage())
		// built-ins already ran, so the proposed shipments are visible
		assert.Len(t, o.Shipments(), 1)
	})

	t.Run("nil order fails validation", func(t *testing.T) {
		machine := newMachine(t, nil)
		require.Error(t, machine.Advance(ctx, nil))
	})
}

func TestCheckoutMachine_WithSkipConfirm(t *testing.T) {
	ctx := context.Background()
	categoryID := kernel.NewUUID()

	t.Run("payment advances straight to complete", func(t *testing.T) {
		ground := flatRateMethod(t, "UPS Ground", "50", categoryID)
		machine := newMachine(t, []*shipping.Method{ground}, services.WithSkipConfirm())
		o := newDeliveryOrder(t, categoryID)
		advanceToStage(t, machine, o, order.StagePayment)

		require.NoError(t, machine.Advance(ctx, o))

		assert.Equal(t, order.StageComplete, o.Stage())
	})

	t.Run("confirm stage has no successor", func(t *testing.T) {
		machine := newMachine(t, nil, services.WithSkipConfirm())
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "USD",
			order.StageConfirm, time.Now(), nil, nil, nil, nil)
		require.NoError(t, err)

		require.ErrorIs(t, machine.Advance(ctx, o), services.ErrInvalidTransition)
	})
}

func TestCheckoutMachine_Cancel(t *testing.T) {
	categoryID := kernel.NewUUID()

	t.Run("cancels mid-checkout bypassing guards", func(t *testing.T) {
		machine := newMachine(t, nil)
		o := newDeliveryOrder(t, categoryID)
		advanceToStage(t, machine, o, order.StageAddress)

		require.NoError(t, machine.Cancel(o))

		assert.Equal(t, order.StageCanceled, o.Stage())
	})

	t.Run("refuses to cancel a completed order", func(t *testing.T) {
		ground := flatRateMethod(t, "UPS Ground", "50", categoryID)
		machine := newMachine(t, []*shipping.Method{ground})
		o := newDeliveryOrder(t, categoryID)
		advanceToStage(t, machine, o, order.StageComplete)

		require.ErrorIs(t, machine.Cancel(o), order.ErrOrderIsComplete)
	})
}

func TestNewCheckoutMachine(t *testing.T) {
	t.Run("requires an estimator", func(t *testing.T) {
		_, err := services.NewCheckoutMachine(nil, nil)
		require.Error(t, err)
	})

	t.Run("address predicate vetoes delivery", func(t *testing.T) {
		categoryID := kernel.NewUUID()
		ground := flatRateMethod(t, "UPS Ground", "50", categoryID)
		estimator, err := services.NewShippingRateEstimator([]*shipping.Method{ground})
		require.NoError(t, err)
		machine, err := services.NewCheckoutMachine(estimator,
			func(order.Address) bool { return false })
		require.NoError(t, err)

		o := newDeliveryOrder(t, categoryID)
		advanceToStage(t, machine, o, order.StageAddress)

		err = machine.Advance(context.Background(), o)

		require.ErrorIs(t, err, services.ErrGuardFailed)
		assert.Equal(t, []string{"shipping address is invalid"}, o.GuardMessages())
	})
}
