package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrSetShippingAddressCommandIsNotConstructed = errors.New(
	"SetShippingAddressCommand must be created via NewSetShippingAddressCommand constructor",
)

// SetShippingAddressCommand represents a request to attach or replace the
// destination address of an order. Setting the address never re-prices
// shipping by itself; rates are rebuilt when the order next enters the
// delivery stage.
type SetShippingAddressCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	address order.Address

	guard guard.ConstructorGuard
}

// NewSetShippingAddressCommand creates a command to set an order's shipping
// address. The address must be a properly constructed value.
func NewSetShippingAddressCommand(orderID kernel.UUID, address order.Address) (SetShippingAddressCommand, error) {
	cmd := SetShippingAddressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAddress(address),
	); err != nil {
		return SetShippingAddressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetShippingAddressCommandIsNotConstructed if validation fails.
func (c SetShippingAddressCommand) Validate() error {
	return c.guard.Validate(ErrSetShippingAddressCommandIsNotConstructed)
}

// OrderID returns the order whose address is being set.
func (c SetShippingAddressCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Address returns the destination address.
func (c SetShippingAddressCommand) Address() order.Address {
	return c.address
}

func (c *SetShippingAddressCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetShippingAddressCommand) setAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}
