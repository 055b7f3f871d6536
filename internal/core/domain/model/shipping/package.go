package shipping

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrPackageIsNotConstructed is returned when a Package was not created
// through a constructor.
var ErrPackageIsNotConstructed = errs.NewValueIsRequiredError(
	"package must be created via NewPackage or BuildPackages")

// Package is the shippable contents of an order bound for one destination:
// the storefront, the destination address, the line items, and the currency
// the order is denominated in. Today every order produces exactly one
// package; the estimator works on the package abstraction so order contents
// can later be split across several shipments without touching the filters.
type Package struct {
	storeID     kernel.UUID
	destination order.Address
	items       []order.LineItem
	currency    string

	guard guard.ConstructorGuard
}

// NewPackage creates a Package with validation. The destination must be a
// constructed address and every item must be denominated in the package
// currency.
func NewPackage(
	storeID kernel.UUID,
	destination order.Address,
	items []order.LineItem,
	currency string,
) (Package, error) {
	if err := storeID.Validate(); err != nil {
		return Package{}, err
	}
	if err := destination.Validate(); err != nil {
		return Package{}, err
	}
	if _, err := kernel.NewMoney(decimal.Zero, currency); err != nil {
		return Package{}, err
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return Package{}, err
		}
	}

	return Package{
		storeID:     storeID,
		destination: destination,
		items:       items,
		currency:    currency,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// BuildPackages groups an order's shippable contents into packages, one per
// order for now. The order must already carry a shipping address.
func BuildPackages(o *order.Order) ([]Package, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.ShippingAddress() == nil {
		return nil, errs.NewValueIsRequiredError("shippingAddress")
	}

	pkg, err := NewPackage(o.StoreID(), *o.ShippingAddress(), o.LineItems(), o.Currency())
	if err != nil {
		return nil, err
	}

	return []Package{pkg}, nil
}

// Validate ensures the Package was created through a constructor.
func (p Package) Validate() error {
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

// StoreID returns the storefront the package belongs to.
func (p Package) StoreID() kernel.UUID {
	return p.storeID
}

// Destination returns the package's delivery address.
func (p Package) Destination() order.Address {
	return p.destination
}

// Items returns the line items the package carries.
func (p Package) Items() []order.LineItem {
	return p.items
}

// Currency returns the ISO 4217 code the package is denominated in.
func (p Package) Currency() string {
	return p.currency
}

// TotalQuantity returns the number of units across all items.
func (p Package) TotalQuantity() int {
	total := 0
	for _, item := range p.items {
		total += item.Quantity()
	}
	return total
}

// RequiredCategoryIDs returns the deduplicated shipping categories the
// package's items ship under. The estimator intersects these with each
// method's categories.
func (p Package) RequiredCategoryIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(p.items))
	categories := make([]kernel.UUID, 0, len(p.items))
	for _, item := range p.items {
		id := item.ShippingCategoryID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		categories = append(categories, id)
	}
	return categories
}

// ItemsTotal returns the sum of item subtotals in the package currency.
func (p Package) ItemsTotal() (kernel.Money, error) {
	if err := p.Validate(); err != nil {
		return kernel.Money{}, err
	}

	total, err := kernel.NewMoney(decimal.Zero, p.currency)
	if err != nil {
		return kernel.Money{}, err
	}

	for _, item := range p.items {
		subtotal, subErr := item.Subtotal()
		if subErr != nil {
			return kernel.Money{}, subErr
		}
		total, subErr = total.Add(subtotal)
		if subErr != nil {
			return kernel.Money{}, subErr
		}
	}

	return total, nil
}
