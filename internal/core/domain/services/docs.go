// Package services contains stateless domain services coordinating multiple
// aggregates: the checkout machine that drives orders through their stages
// and the shipping rate estimator that prices a package against the carrier
// configuration.
package services
