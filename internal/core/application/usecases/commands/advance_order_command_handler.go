package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// AdvanceOrderCommandHandler orchestrates a single checkout transition.
// It loads the order and the shipping method configuration for the order's
// store, assembles the checkout machine, and persists the order only when the
// transition commits. A vetoed or invalid transition rolls the transaction
// back, so guard side effects such as freshly proposed shipments are
// discarded together with the stage change.
type AdvanceOrderCommandHandler struct {
	uowFactory  UoWFactory
	machineOpts []services.CheckoutMachineOption
}

// NewAdvanceOrderCommandHandler creates a handler for checkout transitions.
//
// Parameters:
//   - uowFactory: provides order and shipping method repositories in one
//     transaction
//   - machineOpts: storefront checkout policy, such as
//     services.WithSkipConfirm, fixed at startup
func NewAdvanceOrderCommandHandler(
	uowFactory UoWFactory,
	machineOpts ...services.CheckoutMachineOption,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory:  uowFactory,
		machineOpts: machineOpts,
	}
}

// Handle processes the advance order command.
//
// Returns nil when the order moved one stage forward and was persisted.
// Errors wrapping services.ErrGuardFailed or services.ErrInvalidTransition
// are expected business refusals; anything else is an infrastructure or
// configuration fault.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	methodRepo := uow.ShippingMethodRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	methods, err := methodRepo.GetForStore(ctx, aggregate.StoreID())
	if err != nil {
		return err
	}

	estimator, err := services.NewShippingRateEstimator(methods)
	if err != nil {
		return err
	}

	machine, err := services.NewCheckoutMachine(estimator, nil, h.machineOpts...)
	if err != nil {
		return err
	}

	if err = machine.Advance(ctx, aggregate); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
