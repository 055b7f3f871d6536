// Package shipping contains the carrier configuration side of the domain:
// shipping methods, the zones and categories that scope their eligibility,
// the pluggable cost calculators that price them, and the Package abstraction
// the estimator consumes. Configuration is plain data passed in explicitly;
// there is no ambient global configuration.
package shipping
