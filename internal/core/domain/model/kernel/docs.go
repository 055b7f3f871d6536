// Package kernel contains shared value objects used across the domain model:
// UUID identifiers and currency-tagged Money amounts. These types are
// immutable, constructor-guarded, and carry no behavior specific to any single
// aggregate, which is why they live in the shared kernel rather than in the
// order or shipping packages.
package kernel
