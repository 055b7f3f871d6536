package shipping

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Calculator type names as stored in shipping method configuration.
const (
	CalculatorTypeFlatRate    = "flat_rate"
	CalculatorTypePerItem     = "per_item"
	CalculatorTypeFlatPercent = "flat_percent"
)

// FlatRateCalculator charges a fixed amount per package regardless of its
// contents. The configured amount's currency doubles as the calculator's
// currency preference.
type FlatRateCalculator struct {
	amount kernel.Money
}

// NewFlatRateCalculator creates a flat-rate calculator charging the given
// amount per package.
func NewFlatRateCalculator(amount kernel.Money) (FlatRateCalculator, error) {
	if err := amount.Validate(); err != nil {
		return FlatRateCalculator{}, err
	}
	if amount.Amount().IsNegative() {
		return FlatRateCalculator{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount))
	}
	return FlatRateCalculator{amount: amount}, nil
}

// Name returns "flat_rate".
func (c FlatRateCalculator) Name() string {
	return CalculatorTypeFlatRate
}

// PreferredCurrency returns the currency of the configured amount.
func (c FlatRateCalculator) PreferredCurrency() string {
	return c.amount.Currency()
}

// Amount returns the configured per-package amount.
func (c FlatRateCalculator) Amount() kernel.Money {
	return c.amount
}

// Compute returns the configured amount, or nil for an empty package.
func (c FlatRateCalculator) Compute(pkg Package) (*kernel.Money, error) {
	if err := c.amount.Validate(); err != nil {
		return nil, NewCalculatorError(c.Name(), err)
	}
	if len(pkg.Items()) == 0 {
		return nil, nil
	}

	cost := c.amount
	return &cost, nil
}

// PerItemCalculator charges a fixed amount per unit in the package. The
// configured amount's currency doubles as the calculator's currency
// preference.
type PerItemCalculator struct {
	amountPerUnit kernel.Money
}

// NewPerItemCalculator creates a per-item calculator charging the given
// amount per unit.
func NewPerItemCalculator(amountPerUnit kernel.Money) (PerItemCalculator, error) {
	if err := amountPerUnit.Validate(); err != nil {
		return PerItemCalculator{}, err
	}
	if amountPerUnit.Amount().IsNegative() {
		return PerItemCalculator{}, errs.NewValueIsInvalidErrorWithCause("amountPerUnit",
			fmt.Errorf("%s is negative", amountPerUnit))
	}
	return PerItemCalculator{amountPerUnit: amountPerUnit}, nil
}

// Name returns "per_item".
func (c PerItemCalculator) Name() string {
	return CalculatorTypePerItem
}

// PreferredCurrency returns the currency of the configured unit amount.
func (c PerItemCalculator) PreferredCurrency() string {
	return c.amountPerUnit.Currency()
}

// AmountPerUnit returns the configured per-unit amount.
func (c PerItemCalculator) AmountPerUnit() kernel.Money {
	return c.amountPerUnit
}

// Compute returns unit amount times total quantity, or nil for an empty
// package.
func (c PerItemCalculator) Compute(pkg Package) (*kernel.Money, error) {
	quantity := pkg.TotalQuantity()
	if quantity == 0 {
		return nil, nil
	}

	cost, err := c.amountPerUnit.MulInt(int64(quantity))
	if err != nil {
		return nil, NewCalculatorError(c.Name(), err)
	}
	return &cost, nil
}

// FlatPercentCalculator charges a percentage of the package's items total.
// It carries no currency preference: the cost is computed in whatever
// currency the package is denominated in.
type FlatPercentCalculator struct {
	percent decimal.Decimal
}

// NewFlatPercentCalculator creates a calculator charging the given percentage
// (0..100) of the package's items total.
func NewFlatPercentCalculator(percent decimal.Decimal) (FlatPercentCalculator, error) {
	hundred := decimal.NewFromInt(100)
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return FlatPercentCalculator{}, errs.NewValueIsOutOfRangeError("percent", percent.String(), "0", "100")
	}
	return FlatPercentCalculator{percent: percent}, nil
}

// Name returns "flat_percent".
func (c FlatPercentCalculator) Name() string {
	return CalculatorTypeFlatPercent
}

// PreferredCurrency returns "": the calculator applies to any currency.
func (c FlatPercentCalculator) PreferredCurrency() string {
	return ""
}

// Percent returns the configured percentage.
func (c FlatPercentCalculator) Percent() decimal.Decimal {
	return c.percent
}

// Compute returns percent of the package's items total, or nil for an empty
// package.
func (c FlatPercentCalculator) Compute(pkg Package) (*kernel.Money, error) {
	if len(pkg.Items()) == 0 {
		return nil, nil
	}

	total, err := pkg.ItemsTotal()
	if err != nil {
		return nil, NewCalculatorError(c.Name(), err)
	}

	amount := total.Amount().Mul(c.percent).Div(decimal.NewFromInt(100))
	cost, err := kernel.NewMoney(amount, pkg.Currency())
	if err != nil {
		return nil, NewCalculatorError(c.Name(), err)
	}
	return &cost, nil
}
