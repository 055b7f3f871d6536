package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created
// through the NewLineItem constructor.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError(
	"line item must be created via NewLineItem constructor")

// LineItem is one purchasable position on an order: a SKU, a quantity, a unit
// price snapshot, and the shipping category the item belongs to.
//
// The unit price is snapshotted at the moment the item is added and never
// recomputed from the catalog afterwards; repricing an item means removing it
// and adding a fresh one. The shipping category reference feeds the
// category-overlap filter of the shipping rate estimator.
type LineItem struct { //nolint:recvcheck //using for validation
	id                 kernel.UUID
	sku                string
	quantity           int
	unitPrice          kernel.Money
	shippingCategoryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewLineItem creates a LineItem with validation.
//
// Parameters:
//   - id: unique identifier for the line item
//   - sku: catalog reference of the purchasable item (required)
//   - quantity: number of units (must be positive)
//   - unitPrice: price per unit, snapshotted at add time
//   - shippingCategoryID: shipping category the item ships under
func NewLineItem(
	id kernel.UUID,
	sku string,
	quantity int,
	unitPrice kernel.Money,
	shippingCategoryID kernel.UUID,
) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setSKU(sku),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		item.setShippingCategoryID(shippingCategoryID),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the LineItem was created through the constructor.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// ID returns the line item's unique identifier.
func (li LineItem) ID() kernel.UUID {
	return li.id
}

// SKU returns the catalog reference of the purchasable item.
func (li LineItem) SKU() string {
	return li.sku
}

// Quantity returns the number of units.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the snapshotted price per unit.
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// ShippingCategoryID returns the shipping category the item ships under.
func (li LineItem) ShippingCategoryID() kernel.UUID {
	return li.shippingCategoryID
}

// Subtotal returns unit price multiplied by quantity.
func (li LineItem) Subtotal() (kernel.Money, error) {
	if err := li.Validate(); err != nil {
		return kernel.Money{}, err
	}
	return li.unitPrice.MulInt(int64(li.quantity))
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	li.sku = sku
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	li.unitPrice = unitPrice
	return nil
}

func (li *LineItem) setShippingCategoryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.shippingCategoryID = id
	return nil
}
