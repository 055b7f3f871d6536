package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const countryCodeLength = 2

// ErrAddressIsNotConstructed is returned when an Address was not created
// through the NewAddress constructor.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is an immutable value object describing a delivery destination.
// An address is never updated in place: changing any field means creating a
// new Address value and attaching it to the order. Two orders may safely share
// the same Address value because nothing can mutate it after construction.
//
// Zone matching reads Country and Region; the remaining fields are carried for
// display and carrier hand-off.
type Address struct { //nolint:recvcheck //using for validation
	country    string
	region     string
	postalCode string
	lines      []string

	guard guard.ConstructorGuard
}

// NewAddress creates an Address value.
//
// Parameters:
//   - country: two-letter uppercase ISO 3166-1 code (required)
//   - region: state or province code within the country (optional)
//   - postalCode: postal or ZIP code (required)
//   - lines: free-form street lines, at least one required
func NewAddress(country string, region string, postalCode string, lines ...string) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setCountry(country),
		addr.setRegion(region),
		addr.setPostalCode(postalCode),
		addr.setLines(lines),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate ensures the Address was created through the constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Country returns the two-letter ISO country code.
func (a Address) Country() string {
	return a.country
}

// Region returns the state or province code, or "" when not set.
func (a Address) Region() string {
	return a.region
}

// PostalCode returns the postal or ZIP code.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Lines returns a copy of the free-form street lines.
func (a Address) Lines() []string {
	out := make([]string, len(a.lines))
	copy(out, a.lines)
	return out
}

// IsEqual reports whether two addresses carry identical field values.
func (a Address) IsEqual(other Address) bool {
	if a.country != other.country || a.region != other.region || a.postalCode != other.postalCode {
		return false
	}
	if len(a.lines) != len(other.lines) {
		return false
	}
	for i := range a.lines {
		if a.lines[i] != other.lines[i] {
			return false
		}
	}
	return true
}

func (a *Address) setCountry(country string) error {
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	if len(country) != countryCodeLength || country != strings.ToUpper(country) {
		return errs.NewValueIsInvalidErrorWithCause("country",
			fmt.Errorf("%q is not a two-letter ISO 3166-1 code", country))
	}

	a.country = country
	return nil
}

func (a *Address) setRegion(region string) error {
	a.region = region
	return nil
}

func (a *Address) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}

	a.postalCode = postalCode
	return nil
}

func (a *Address) setLines(lines []string) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for _, line := range lines {
		if line == "" {
			return errs.NewValueIsInvalidErrorWithCause("lines",
				errors.New("address lines must not be empty"))
		}
	}

	a.lines = make([]string, len(lines))
	copy(a.lines, lines)
	return nil
}
