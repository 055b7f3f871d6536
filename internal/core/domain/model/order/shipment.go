package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrShippingRateIsNotConstructed is returned when a ShippingRate was not
	// created through the NewShippingRate constructor.
	ErrShippingRateIsNotConstructed = errs.NewValueIsRequiredError(
		"shipping rate must be created via NewShippingRate constructor")

	// ErrShipmentIsNotConstructed is returned when a Shipment was not created
	// through the NewShipment constructor.
	ErrShipmentIsNotConstructed = errs.NewValueIsRequiredError(
		"shipment must be created via NewShipment constructor")
)

// ShippingRate is one shipping option offered for a shipment: the method that
// would carry it and the computed cost. Exactly one rate per non-empty
// shipment is selected; the estimator selects the cheapest by default.
type ShippingRate struct { //nolint:recvcheck //using for validation
	methodID   kernel.UUID
	methodName string
	cost       kernel.Money
	selected   bool

	guard guard.ConstructorGuard
}

// NewShippingRate creates an unselected ShippingRate for the given method and
// computed cost.
func NewShippingRate(methodID kernel.UUID, methodName string, cost kernel.Money) (*ShippingRate, error) {
	rate := &ShippingRate{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rate.setMethod(methodID, methodName),
		rate.setCost(cost),
	); err != nil {
		return nil, err
	}

	return rate, nil
}

// RestoreShippingRate reconstructs a ShippingRate from persistence, including
// its selected flag.
func RestoreShippingRate(
	methodID kernel.UUID,
	methodName string,
	cost kernel.Money,
	selected bool,
) (*ShippingRate, error) {
	rate, err := NewShippingRate(methodID, methodName, cost)
	if err != nil {
		return nil, err
	}
	rate.selected = selected
	return rate, nil
}

// Validate ensures the ShippingRate was created through a constructor.
func (r *ShippingRate) Validate() error {
	if r == nil {
		return ErrShippingRateIsNotConstructed
	}
	return r.guard.Validate(ErrShippingRateIsNotConstructed)
}

// MethodID returns the identifier of the shipping method behind the rate.
func (r *ShippingRate) MethodID() kernel.UUID {
	return r.methodID
}

// MethodName returns the display name of the shipping method.
func (r *ShippingRate) MethodName() string {
	return r.methodName
}

// Cost returns the computed shipping cost.
func (r *ShippingRate) Cost() kernel.Money {
	return r.cost
}

// IsSelected reports whether this rate is the shipment's chosen option.
func (r *ShippingRate) IsSelected() bool {
	return r.selected
}

// Select marks this rate as the shipment's chosen option.
// The caller is responsible for keeping at most one rate selected.
func (r *ShippingRate) Select() {
	r.selected = true
}

// Unselect clears the selected flag.
func (r *ShippingRate) Unselect() {
	r.selected = false
}

func (r *ShippingRate) setMethod(methodID kernel.UUID, methodName string) error {
	if err := methodID.Validate(); err != nil {
		return err
	}
	if methodName == "" {
		return errs.NewValueIsRequiredError("methodName")
	}
	r.methodID = methodID
	r.methodName = methodName
	return nil
}

func (r *ShippingRate) setCost(cost kernel.Money) error {
	if err := cost.Validate(); err != nil {
		return err
	}
	r.cost = cost
	return nil
}

// Shipment is one physical grouping of an order's line items together with its
// candidate shipping rates. Shipments are rebuilt from scratch whenever
// proposed shipments are recomputed; they are never merged with prior ones.
//
// Invariant: zero or more candidate rates, at most one of them selected.
type Shipment struct {
	id    kernel.UUID
	rates []*ShippingRate

	guard guard.ConstructorGuard
}

// NewShipment creates a Shipment carrying the given candidate rates.
// Fails if more than one rate is marked selected.
func NewShipment(id kernel.UUID, rates []*ShippingRate) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	selected := 0
	for _, rate := range rates {
		if err := rate.Validate(); err != nil {
			return nil, err
		}
		if rate.IsSelected() {
			selected++
		}
	}
	if selected > 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("rates",
			fmt.Errorf("%d rates are selected, at most 1 is allowed", selected))
	}

	return &Shipment{
		id:    id,
		rates: rates,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Shipment was created through the constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Rates returns the candidate shipping rates.
func (s *Shipment) Rates() []*ShippingRate {
	return s.rates
}

// HasRates reports whether at least one candidate rate is present.
func (s *Shipment) HasRates() bool {
	return len(s.rates) > 0
}

// SelectedRate returns the chosen rate, or nil when the shipment has none.
func (s *Shipment) SelectedRate() *ShippingRate {
	for _, rate := range s.rates {
		if rate.IsSelected() {
			return rate
		}
	}
	return nil
}
