package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// AddLineItemCommandHandler handles adding a purchasable item to an order.
// The aggregate rejects the item when its currency differs from the order's
// or when the order is already terminal.
type AddLineItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddLineItemCommandHandler creates a handler for line item addition.
// Requires an OrderUoWFactory for transactional persistence.
func NewAddLineItemCommandHandler(uowFactory OrderUoWFactory) AddLineItemCommandHandler {
	return AddLineItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add line item command.
// Loads the order, appends the new line item, and persists the change within
// a transaction.
func (h *AddLineItemCommandHandler) Handle(ctx context.Context, cmd AddLineItemCommand) error {
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

	item, err := order.NewLineItem(
		kernel.NewUUID(), cmd.SKU(), cmd.Quantity(), cmd.UnitPrice(), cmd.ShippingCategoryID())
	if err != nil {
		return err
	}

	if err = aggregate.AddLineItem(item); err != nil {
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
