// Package guard implements the constructor guard pattern used by value objects,
// entities, and commands throughout the application. Embedding a ConstructorGuard
// lets a type detect whether it was created through its designated constructor
// or left as a zero value, so invariants established at construction time cannot
// be bypassed by direct struct literals.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// caller does not supply its own validation error. Validation always fails with
// a meaningful message even when no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value is
// "not constructed" and fails Validate, which is exactly what makes the pattern
// work: a struct built with a literal carries a zero guard.
//
// Example usage:
//
//	var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress")
//
//	type Address struct {
//	    country string
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewAddress(country string) (Address, error) {
//	    if country == "" {
//	        return Address{}, errors.New("country is required")
//	    }
//	    return Address{country: country, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (a Address) Validate() error {
//	    return a.guard.Validate(ErrAddressIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as properly
// constructed. Call it in every constructor of a guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the guarded object went through its constructor.
// Returns nil for constructed objects. For zero-value objects it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
