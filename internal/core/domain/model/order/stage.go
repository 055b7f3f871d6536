package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Stage represents a step in the order checkout lifecycle.
//
// The forward path is a fixed sequence:
//
//	Cart ──> Address ──> Delivery ──> Payment ──> Confirm ──> Complete
//
// Canceled is a parallel terminal stage reachable from any stage except
// Complete. The checkout machine owns the transition table; Stage only knows
// its default successor, its ordering, and which stages are terminal.
type Stage int

const (
	// StageUnknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	StageUnknown Stage = iota

	// StageCart is the initial stage: the order is an open basket.
	StageCart

	// StageAddress is where the customer supplies shipping and billing
	// addresses.
	StageAddress

	// StageDelivery is reached once shipping rates have been computed and at
	// least one shipping option is available.
	StageDelivery

	// StagePayment is where payment details are collected.
	StagePayment

	// StageConfirm is the optional final review step before completion.
	StageConfirm

	// StageComplete marks a successfully placed order. Terminal.
	StageComplete

	// StageCanceled marks an abandoned or canceled order. Terminal.
	StageCanceled
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:  "unknown",
		StageCart:     "cart",
		StageAddress:  "address",
		StageDelivery: "delivery",
		StagePayment:  "payment",
		StageConfirm:  "confirm",
		StageComplete: "complete",
		StageCanceled: "canceled",
	}
}

func getValidStageStrings() map[Stage]string {
	//nolint:exhaustive // StageUnknown is intentionally excluded as it's invalid
	return map[Stage]string{
		StageCart:     "cart",
		StageAddress:  "address",
		StageDelivery: "delivery",
		StagePayment:  "payment",
		StageConfirm:  "confirm",
		StageComplete: "complete",
		StageCanceled: "canceled",
	}
}

// Validate checks the Stage is one of the defined checkout stages.
// StageUnknown and any out-of-range value are invalid. Used to vet stage
// values arriving from persistence or external callers.
func (s Stage) Validate() error {
	if _, ok := getValidStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the lowercase stage name, or "unknown" for invalid values.
// Implements fmt.Stringer and is safe on any Stage value.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StageFromString parses a stage name as stored in persistence or supplied
// over the API. Returns an error for unrecognized names.
func StageFromString(name string) (Stage, error) {
	for stage, str := range getValidStageStrings() {
		if str == name {
			return stage, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage",
		fmt.Errorf("%q is not a valid stage name", name))
}

// IsTerminal reports whether the stage admits no further transitions.
func (s Stage) IsTerminal() bool {
	return s == StageComplete || s == StageCanceled
}

// Next returns the default successor stage on the forward checkout path.
// Returns false when no successor is defined: for the two terminal stages and
// for invalid values. The checkout machine consults this table at startup and
// may rewire it (for example to skip the confirm stage).
func (s Stage) Next() (Stage, bool) {
	//nolint:exhaustive // terminal and invalid stages fall through to the default
	switch s {
	case StageCart:
		return StageAddress, true
	case StageAddress:
		return StageDelivery, true
	case StageDelivery:
		return StagePayment, true
	case StagePayment:
		return StageConfirm, true
	case StageConfirm:
		return StageComplete, true
	default:
		return StageUnknown, false
	}
}
