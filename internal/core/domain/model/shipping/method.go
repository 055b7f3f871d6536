package shipping

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrMethodIsNotConstructed is returned when a Method was not created through
// the NewMethod constructor.
var ErrMethodIsNotConstructed = errs.NewValueIsRequiredError(
	"shipping method must be created via NewMethod constructor")

// Method is the configuration of one shipping option a carrier offers:
// which storefronts may sell it, which zones it serves, which shipping
// categories it can carry, and the calculator that prices it.
//
// A method is eligible for a package only when all four of store
// association, zone match, category overlap, and currency match hold; the
// estimator applies those checks in that order.
type Method struct {
	id          kernel.UUID
	name        string
	categoryIDs []kernel.UUID
	zones       []Zone
	storeIDs    []kernel.UUID
	calculator  Calculator

	guard guard.ConstructorGuard
}

// NewMethod creates a shipping Method with validation.
//
// Parameters:
//   - id: unique identifier of the method
//   - name: carrier/method display name (required)
//   - categoryIDs: shipping categories the method can carry (at least one)
//   - zones: geographic zones the method serves (at least one)
//   - storeIDs: storefronts that may offer the method; empty means every
//     store may (permissive default)
//   - calculator: the cost function pricing the method (required)
func NewMethod(
	id kernel.UUID,
	name string,
	categoryIDs []kernel.UUID,
	zones []Zone,
	storeIDs []kernel.UUID,
	calculator Calculator,
) (*Method, error) {
	m := &Method{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
		m.setCategoryIDs(categoryIDs),
		m.setZones(zones),
		m.setStoreIDs(storeIDs),
		m.setCalculator(calculator),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate ensures the Method was created through the constructor.
func (m *Method) Validate() error {
	if m == nil {
		return ErrMethodIsNotConstructed
	}
	return m.guard.Validate(ErrMethodIsNotConstructed)
}

// ID returns the method's unique identifier.
func (m *Method) ID() kernel.UUID {
	return m.id
}

// Name returns the carrier/method display name.
func (m *Method) Name() string {
	return m.name
}

// CategoryIDs returns the shipping categories the method can carry.
func (m *Method) CategoryIDs() []kernel.UUID {
	return m.categoryIDs
}

// Zones returns the geographic zones the method serves.
func (m *Method) Zones() []Zone {
	return m.zones
}

// StoreIDs returns the storefronts the method is restricted to.
// Empty means the method is available to every store.
func (m *Method) StoreIDs() []kernel.UUID {
	return m.storeIDs
}

// Calculator returns the method's cost function.
func (m *Method) Calculator() Calculator {
	return m.calculator
}

// ServesStore reports whether the method may be offered by the given store.
// A method with no store associations serves every store.
func (m *Method) ServesStore(storeID kernel.UUID) bool {
	if len(m.storeIDs) == 0 {
		return true
	}
	for _, id := range m.storeIDs {
		if id.IsEqual(storeID) {
			return true
		}
	}
	return false
}

// ServesAddress reports whether any of the method's zones matches the
// address.
func (m *Method) ServesAddress(addr order.Address) bool {
	for _, zone := range m.zones {
		if zone.Matches(addr) {
			return true
		}
	}
	return false
}

// CarriesAnyCategory reports whether the method's categories intersect the
// required ones.
func (m *Method) CarriesAnyCategory(required []kernel.UUID) bool {
	for _, want := range required {
		for _, have := range m.categoryIDs {
			if have.IsEqual(want) {
				return true
			}
		}
	}
	return false
}

func (m *Method) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Method) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = name
	return nil
}

func (m *Method) setCategoryIDs(categoryIDs []kernel.UUID) error {
	if len(categoryIDs) == 0 {
		return errs.NewValueIsRequiredError("categoryIDs")
	}
	for _, id := range categoryIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	m.categoryIDs = categoryIDs
	return nil
}

func (m *Method) setZones(zones []Zone) error {
	if len(zones) == 0 {
		return errs.NewValueIsRequiredError("zones")
	}
	for _, zone := range zones {
		if err := zone.Validate(); err != nil {
			return err
		}
	}
	m.zones = zones
	return nil
}

func (m *Method) setStoreIDs(storeIDs []kernel.UUID) error {
	for _, id := range storeIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	m.storeIDs = storeIDs
	return nil
}

func (m *Method) setCalculator(calculator Calculator) error {
	if calculator == nil {
		return errs.NewValueIsRequiredError("calculator")
	}
	m.calculator = calculator
	return nil
}
