package commands

import (
	"context"
)

// SetShippingAddressCommandHandler handles attaching a destination address to
// an order.
type SetShippingAddressCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetShippingAddressCommandHandler creates a handler for address updates.
// Requires an OrderUoWFactory for transactional persistence.
func NewSetShippingAddressCommandHandler(uowFactory OrderUoWFactory) SetShippingAddressCommandHandler {
	return SetShippingAddressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the set shipping address command.
// Loads the order, replaces its shipping address, and persists the change
// within a transaction.
func (h *SetShippingAddressCommandHandler) Handle(ctx context.Context, cmd SetShippingAddressCommand) error {
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
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.SetShippingAddress(cmd.Address()); err != nil {
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
