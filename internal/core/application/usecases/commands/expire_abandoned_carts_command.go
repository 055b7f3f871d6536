package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrExpireAbandonedCartsCommandIsNotConstructed = errors.New(
	"ExpireAbandonedCartsCommand must be created via NewExpireAbandonedCartsCommand constructor",
)

// ExpireAbandonedCartsCommand represents a request to cancel cart-stage
// orders created before the cutoff. Triggered periodically by the
// abandoned-cart job rather than by customers.
type ExpireAbandonedCartsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewExpireAbandonedCartsCommand creates a command to expire carts created
// before the cutoff instant.
func NewExpireAbandonedCartsCommand(cutoff time.Time) (ExpireAbandonedCartsCommand, error) {
	cmd := ExpireAbandonedCartsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCutoff(cutoff); err != nil {
		return ExpireAbandonedCartsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpireAbandonedCartsCommandIsNotConstructed if validation fails.
func (c ExpireAbandonedCartsCommand) Validate() error {
	return c.guard.Validate(ErrExpireAbandonedCartsCommandIsNotConstructed)
}

// Cutoff returns the instant before which cart-stage orders are expired.
func (c ExpireAbandonedCartsCommand) Cutoff() time.Time {
	return c.cutoff
}

func (c *ExpireAbandonedCartsCommand) setCutoff(cutoff time.Time) error {
	if cutoff.IsZero() {
		return errs.NewValueIsRequiredError("cutoff")
	}

	c.cutoff = cutoff
	return nil
}
