package services

import (
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipping"
)

// ShippingRateEstimator is a domain service that computes the usable shipping
// rates for a package by intersecting carrier configuration with the
// package's attributes.
//
// The estimator is a pure in-memory computation: the shipping method
// configuration is loaded by the caller beforehand and passed in explicitly
// at construction. No I/O happens inside the filter or selection logic.
//
// Filters run cheapest-first: store and zone checks are plain data lookups,
// the category check is a small intersection, and only methods surviving all
// three ever have their calculator invoked. That ordering keeps calculator
// invocations, the one potentially expensive step, to a minimum.
//
// Example usage:
//
//	estimator, _ := services.NewShippingRateEstimator(methods)
//	rates, err := estimator.Estimate(pkg, nil)
//	if err != nil {
//	    // calculator misconfiguration, surface to the operator
//	}
//	if len(rates) == 0 {
//	    // valid business outcome: nothing ships to this address
//	}
type ShippingRateEstimator struct {
	methods []*shipping.Method
}

// NewShippingRateEstimator creates an estimator over the given shipping
// method configuration. Methods must all be properly constructed; the list
// may be empty, in which case every estimate yields no rates.
func NewShippingRateEstimator(methods []*shipping.Method) (ShippingRateEstimator, error) {
	for _, method := range methods {
		if err := method.Validate(); err != nil {
			return ShippingRateEstimator{}, err
		}
	}
	return ShippingRateEstimator{methods: methods}, nil
}

// Estimate computes the sorted, deduplicated list of usable shipping rates
// for the package and marks exactly one as selected.
//
// Parameters:
//   - pkg: the shippable contents to price
//   - preferredMethodID: optional; when the preferred method survives the
//     filters its rate is selected instead of the cheapest one
//
// Returns the rate list sorted ascending by cost with ties broken by method
// name. An empty list is a valid, reportable outcome (for example, no zone
// covers the destination). A non-nil error always wraps
// shipping.ErrCalculator and indicates a fatal configuration fault, never an
// ordinary "no rates" condition.
func (e ShippingRateEstimator) Estimate(
	pkg shipping.Package,
	preferredMethodID *kernel.UUID,
) ([]*order.ShippingRate, error) {
	if err := pkg.Validate(); err != nil {
		return nil, err
	}

	candidates := e.filterByStore(e.methods, pkg)
	candidates = filterByAddress(candidates, pkg)
	candidates = filterByCategory(candidates, pkg)

	rates, err := computeRates(candidates, pkg)
	if err != nil {
		return nil, err
	}

	sortRates(rates)
	selectRate(rates, preferredMethodID)
	return rates, nil
}

// filterByStore keeps methods associated with the package's store. Methods
// with no explicit store associations serve every store.
func (e ShippingRateEstimator) filterByStore(methods []*shipping.Method, pkg shipping.Package) []*shipping.Method {
	kept := make([]*shipping.Method, 0, len(methods))
	for _, method := range methods {
		if method.ServesStore(pkg.StoreID()) {
			kept = append(kept, method)
		}
	}
	return kept
}

// filterByAddress keeps methods with at least one zone covering the
// destination. An address no zone covers empties the candidate set, which is
// an expected condition, not an error.
func filterByAddress(methods []*shipping.Method, pkg shipping.Package) []*shipping.Method {
	kept := make([]*shipping.Method, 0, len(methods))
	for _, method := range methods {
		if method.ServesAddress(pkg.Destination()) {
			kept = append(kept, method)
		}
	}
	return kept
}

// filterByCategory keeps methods whose categories intersect the package's
// required ones. Methods with no matching category are dropped silently.
func filterByCategory(methods []*shipping.Method, pkg shipping.Package) []*shipping.Method {
	required := pkg.RequiredCategoryIDs()
	kept := make([]*shipping.Method, 0, len(methods))
	for _, method := range methods {
		if method.CarriesAnyCategory(required) {
			kept = append(kept, method)
		}
	}
	return kept
}

// computeRates invokes each surviving method's calculator and builds one rate
// per method that yields a cost. Methods whose calculator prefers a currency
// other than the package's are dropped before the calculator runs; methods
// whose calculator returns no cost are dropped silently.
func computeRates(methods []*shipping.Method, pkg shipping.Package) ([]*order.ShippingRate, error) {
	rates := make([]*order.ShippingRate, 0, len(methods))
	for _, method := range methods {
		calculator := method.Calculator()
		if preferred := calculator.PreferredCurrency(); preferred != "" && preferred != pkg.Currency() {
			continue
		}

		cost, err := calculator.Compute(pkg)
		if err != nil {
			return nil, err
		}
		if cost == nil {
			continue
		}

		rate, err := order.NewShippingRate(method.ID(), method.Name(), *cost)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

// sortRates orders rates ascending by cost, ties broken by method name so
// repeated estimates over the same input produce the same list.
func sortRates(rates []*order.ShippingRate) {
	sort.SliceStable(rates, func(i, j int) bool {
		cmp := rates[i].Cost().Amount().Cmp(rates[j].Cost().Amount())
		if cmp != 0 {
			return cmp < 0
		}
		return rates[i].MethodName() < rates[j].MethodName()
	})
}

// selectRate marks the preferred method's rate as selected when present,
// otherwise the cheapest one. No-op on an empty list.
func selectRate(rates []*order.ShippingRate, preferredMethodID *kernel.UUID) {
	if len(rates) == 0 {
		return
	}

	if preferredMethodID != nil {
		for _, rate := range rates {
			if rate.MethodID().IsEqual(*preferredMethodID) {
				rate.Select()
				return
			}
		}
	}
	rates[0].Select()
}
