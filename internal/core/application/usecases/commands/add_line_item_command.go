package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAddLineItemCommandIsNotConstructed = errors.New(
	"AddLineItemCommand must be created via NewAddLineItemCommand constructor",
)

// AddLineItemCommand represents a request to add a purchasable item to an
// order's cart. The unit price is captured at add time; the order does not
// consult a catalog afterwards.
type AddLineItemCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	sku                string
	quantity           int
	unitPrice          kernel.Money
	shippingCategoryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddLineItemCommand creates a command to add a line item to an order.
// Validates identifiers, requires a non-empty SKU, a positive quantity, and a
// constructed unit price. Currency agreement with the order is enforced by
// the aggregate, not here.
func NewAddLineItemCommand(
	orderID kernel.UUID,
	sku string,
	quantity int,
	unitPrice kernel.Money,
	shippingCategoryID kernel.UUID,
) (AddLineItemCommand, error) {
	cmd := AddLineItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSKU(sku),
		cmd.setQuantity(quantity),
		cmd.setUnitPrice(unitPrice),
		cmd.setShippingCategoryID(shippingCategoryID),
	); err != nil {
		return AddLineItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddLineItemCommandIsNotConstructed if validation fails.
func (c AddLineItemCommand) Validate() error {
	return c.guard.Validate(ErrAddLineItemCommandIsNotConstructed)
}

// OrderID returns the order to add the item to.
func (c AddLineItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SKU returns the catalog identifier of the purchased variant.
func (c AddLineItemCommand) SKU() string {
	return c.sku
}

// Quantity returns the number of units purchased.
func (c AddLineItemCommand) Quantity() int {
	return c.quantity
}

// UnitPrice returns the price per unit captured at add time.
func (c AddLineItemCommand) UnitPrice() kernel.Money {
	return c.unitPrice
}

// ShippingCategoryID returns the shipping category of the purchased variant.
func (c AddLineItemCommand) ShippingCategoryID() kernel.UUID {
	return c.shippingCategoryID
}

func (c *AddLineItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddLineItemCommand) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}

	c.sku = sku
	return nil
}

func (c *AddLineItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	c.quantity = quantity
	return nil
}

func (c *AddLineItemCommand) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}

	c.unitPrice = unitPrice
	return nil
}

func (c *AddLineItemCommand) setShippingCategoryID(shippingCategoryID kernel.UUID) error {
	if err := shippingCategoryID.Validate(); err != nil {
		return err
	}

	c.shippingCategoryID = shippingCategoryID
	return nil
}
