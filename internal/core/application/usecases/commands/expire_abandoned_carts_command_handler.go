package commands

import (
	"context"
)

// ExpireAbandonedCartsCommandHandler cancels cart-stage orders that were
// never advanced past the cart. All matched carts are canceled in one
// transaction; a failure on any of them rolls back the whole batch.
type ExpireAbandonedCartsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewExpireAbandonedCartsCommandHandler creates a handler for cart expiry.
// Requires an OrderUoWFactory for transactional persistence.
func NewExpireAbandonedCartsCommandHandler(uowFactory OrderUoWFactory) ExpireAbandonedCartsCommandHandler {
	return ExpireAbandonedCartsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the expire abandoned carts command.
// Loads every cart-stage order created before the cutoff, cancels it, and
// persists the batch in a single transaction.
func (h *ExpireAbandonedCartsCommandHandler) Handle(ctx context.Context, cmd ExpireAbandonedCartsCommand) error {
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
	carts, err := orderRepo.GetCartsCreatedBefore(ctx, cmd.Cutoff())
	if err != nil {
		return err
	}

	for _, cart := range carts {
		if err = cart.Cancel(); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, cart); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
