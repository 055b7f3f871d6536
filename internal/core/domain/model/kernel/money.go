package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const currencyCodeLength = 3

// ErrMoneyIsNotConstructed is returned when a Money instance was not created
// through NewMoney or MoneyFromString.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or MoneyFromString constructors")

// ErrCurrencyMismatch is returned when arithmetic or comparison is attempted
// across two Money values with different currencies.
var ErrCurrencyMismatch = errs.NewValueIsInvalidError("money currencies do not match")

// Money is an immutable value object pairing a decimal amount with an ISO 4217
// currency code. All monetary values in the domain (line item prices, shipping
// rate costs, order totals) are represented as Money so that amounts in
// different currencies can never be mixed silently.
//
// The zero value is invalid and fails Validate; use the constructors.
//
// Example:
//
//	cost, err := kernel.NewMoney(decimal.NewFromInt(50), "USD")
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(cost) // Output: 50 USD
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates a Money value with the given amount and currency code.
// The currency must be a three-letter uppercase ISO 4217 code. Negative
// amounts are allowed; refunds and adjustments are legitimate monetary values.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := m.setCurrency(currency); err != nil {
		return Money{}, err
	}
	m.amount = amount

	return m, nil
}

// MoneyFromString parses the amount from its decimal string representation,
// as stored in persistence, and pairs it with the currency code.
func MoneyFromString(amount string, currency string) (Money, error) {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(parsed, currency)
}

// Validate ensures the Money value was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of two Money values.
// Returns ErrCurrencyMismatch if the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := m.validatePair(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// MulInt returns the Money value multiplied by an integer factor.
// Used for quantity-based totals such as line item subtotals.
func (m Money) MulInt(factor int64) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Mul(decimal.NewFromInt(factor)), m.currency)
}

// Cmp compares two Money amounts: -1 if m < other, 0 if equal, 1 if m > other.
// Returns ErrCurrencyMismatch if the currencies differ.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.validatePair(other); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

// IsEqual reports whether two Money values have the same amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns "amount currency", e.g. "50 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency)
}

func (m Money) validatePair(other Money) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := other.Validate(); err != nil {
		return err
	}
	if m.currency != other.currency {
		return ErrCurrencyMismatch
	}
	return nil
}

func (m *Money) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	if len(currency) != currencyCodeLength {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a three-letter ISO 4217 code", currency))
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return errs.NewValueIsInvalidErrorWithCause("currency",
				fmt.Errorf("%q is not a three-letter ISO 4217 code", currency))
		}
	}

	m.currency = currency
	return nil
}
