package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipping"
)

var (
	// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
	// It signals caller misuse: advancing an order whose stage has no defined
	// successor.
	ErrInvalidTransition = errors.New("no transition defined from stage")

	// ErrGuardFailed is the sentinel wrapped by GuardError. It signals an
	// expected business-rule failure that the customer or operator can
	// correct, after which the transition may be retried.
	ErrGuardFailed = errors.New("transition guard failed")
)

// InvalidTransitionError reports an advance attempt on an order with no
// defined successor stage (terminal or unknown stage value).
type InvalidTransitionError struct {
	Stage order.Stage
}

// NewInvalidTransitionError creates an InvalidTransitionError for the stage.
func NewInvalidTransitionError(stage order.Stage) *InvalidTransitionError {
	return &InvalidTransitionError{Stage: stage}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidTransition, e.Stage)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// GuardError reports which guard vetoed a transition into which stage, with
// the human-readable messages also recorded on the order's transient list.
type GuardError struct {
	Stage    order.Stage
	Guard    string
	Messages []string
}

// NewGuardError creates a GuardError for the named guard and target stage.
func NewGuardError(stage order.Stage, guardName string, messages []string) *GuardError {
	return &GuardError{Stage: stage, Guard: guardName, Messages: messages}
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("%s: %s into %s (%s)", ErrGuardFailed, e.Guard, e.Stage, strings.Join(e.Messages, "; "))
}

func (e *GuardError) Unwrap() error {
	return ErrGuardFailed
}

// RateEstimator computes the candidate shipping rates for a package. The
// checkout machine depends on this narrow contract rather than on the
// concrete estimator so tests can substitute their own.
type RateEstimator interface {
	Estimate(pkg shipping.Package, preferredMethodID *kernel.UUID) ([]*order.ShippingRate, error)
}

// AddressValidator is the pluggable predicate deciding whether a shipping
// address is usable. The default accepts every constructed address.
type AddressValidator func(addr order.Address) bool

// TransitionGuard is a named pre-transition callback. Check returns
// human-readable veto messages (non-empty means the transition is refused),
// or an error for fatal faults such as a broken calculator, which abort the
// transition without being recorded as a business failure.
type TransitionGuard struct {
	Name  string
	Check func(ctx context.Context, o *order.Order) ([]string, error)
}

// CheckoutMachineOption configures a CheckoutMachine at construction.
type CheckoutMachineOption func(*CheckoutMachine)

// WithSkipConfirm rewires the transition table so payment advances straight
// to complete, omitting the confirm stage. Whether checkout has a confirm
// step is storefront policy fixed at startup, never derived from order data.
func WithSkipConfirm() CheckoutMachineOption {
	return func(m *CheckoutMachine) {
		m.transitions[order.StagePayment] = order.StageComplete
		delete(m.transitions, order.StageConfirm)
	}
}

// WithGuard appends a guard to the chain run before entering the target
// stage. Guards run in registration order, after the built-in ones.
func WithGuard(target order.Stage, g TransitionGuard) CheckoutMachineOption {
	return func(m *CheckoutMachine) {
		m.guards[target] = append(m.guards[target], g)
	}
}

// CheckoutMachine drives an order through the checkout stages. It is built
// at startup from a static transition table plus an ordered guard list per
// target stage; there is no runtime registration machinery.
//
// Guarantee: Advance is all-or-nothing with respect to the order's stage.
// Either every guard for the target stage passes and the stage is committed,
// or the stage is untouched and the order's transient guard messages explain
// the refusal. Guard side effects that already happened (such as freshly
// proposed shipments) are visible either way; persisting or discarding them
// is the caller's transaction decision.
//
// The machine holds no locks; callers serialize Advance calls per order.
type CheckoutMachine struct {
	estimator       RateEstimator
	validateAddress AddressValidator
	transitions     map[order.Stage]order.Stage
	guards          map[order.Stage][]TransitionGuard
}

// NewCheckoutMachine creates a CheckoutMachine with the default transition
// table and the built-in delivery-stage guard chain.
//
// Parameters:
//   - estimator: computes candidate shipping rates when entering delivery
//   - validateAddress: pluggable address predicate; nil accepts every
//     constructed address
//   - opts: optional policy such as WithSkipConfirm or extra guards
func NewCheckoutMachine(
	estimator RateEstimator,
	validateAddress AddressValidator,
	opts ...CheckoutMachineOption,
) (*CheckoutMachine, error) {
	if estimator == nil {
		return nil, errors.New("estimator is required")
	}
	if validateAddress == nil {
		validateAddress = func(order.Address) bool { return true }
	}

	m := &CheckoutMachine{
		estimator:       estimator,
		validateAddress: validateAddress,
		transitions:     defaultTransitions(),
		guards:          make(map[order.Stage][]TransitionGuard),
	}

	m.guards[order.StageDelivery] = []TransitionGuard{
		{Name: "ensure_shipping_address", Check: m.ensureShippingAddress},
		{Name: "create_proposed_shipments", Check: m.createProposedShipments},
		{Name: "ensure_available_shipping_rates", Check: m.ensureAvailableShippingRates},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// defaultTransitions builds the forward table from the stage ordering.
func defaultTransitions() map[order.Stage]order.Stage {
	transitions := make(map[order.Stage]order.Stage)
	for _, stage := range []order.Stage{
		order.StageCart,
		order.StageAddress,
		order.StageDelivery,
		order.StagePayment,
		order.StageConfirm,
	} {
		if next, ok := stage.Next(); ok {
			transitions[stage] = next
		}
	}
	return transitions
}

// Advance attempts the single forward transition from the order's current
// stage.
//
// Returns:
//   - nil when the order's stage now equals the successor stage
//   - InvalidTransitionError when no successor is defined (terminal order)
//   - GuardError when a guard vetoed the transition; the order's stage is
//     unchanged and its GuardMessages explain why
//   - any other error for fatal faults (calculator misconfiguration),
//     propagated unchanged for operator attention
func (m *CheckoutMachine) Advance(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	target, ok := m.transitions[o.Stage()]
	if !ok {
		return NewInvalidTransitionError(o.Stage())
	}

	o.ClearGuardMessages()
	for _, g := range m.guards[target] {
		messages, err := g.Check(ctx, o)
		if err != nil {
			return err
		}
		if len(messages) > 0 {
			o.RecordGuardFailure(messages...)
			return NewGuardError(target, g.Name, messages)
		}
	}

	return o.AdvanceTo(target)
}

// Cancel moves the order to the canceled stage, bypassing forward-transition
// guards. Permitted from any stage except complete.
func (m *CheckoutMachine) Cancel(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.Cancel()
}

// ensureShippingAddress vetoes the delivery transition when the order has no
// shipping address or the pluggable predicate rejects it.
func (m *CheckoutMachine) ensureShippingAddress(_ context.Context, o *order.Order) ([]string, error) {
	addr := o.ShippingAddress()
	if addr == nil {
		return []string{"order has no shipping address"}, nil
	}
	if !m.validateAddress(*addr) {
		return []string{"shipping address is invalid"}, nil
	}
	return nil, nil
}

// createProposedShipments discards any existing shipments and rebuilds them
// from fresh estimates, one shipment per package. It only fails when
// estimation itself fails, which is fatal rather than a guard veto.
func (m *CheckoutMachine) createProposedShipments(_ context.Context, o *order.Order) ([]string, error) {
	packages, err := shipping.BuildPackages(o)
	if err != nil {
		return nil, err
	}

	shipments := make([]*order.Shipment, 0, len(packages))
	for _, pkg := range packages {
		rates, estimateErr := m.estimator.Estimate(pkg, nil)
		if estimateErr != nil {
			return nil, estimateErr
		}

		shipment, shipmentErr := order.NewShipment(kernel.NewUUID(), rates)
		if shipmentErr != nil {
			return nil, shipmentErr
		}
		shipments = append(shipments, shipment)
	}

	if err = o.ReplaceShipments(shipments); err != nil {
		return nil, err
	}
	return nil, nil
}

// ensureAvailableShippingRates vetoes the delivery transition when any
// freshly built shipment ended up with zero candidate rates.
func (m *CheckoutMachine) ensureAvailableShippingRates(_ context.Context, o *order.Order) ([]string, error) {
	for _, shipment := range o.Shipments() {
		if !shipment.HasRates() {
			return []string{"unable to calculate shipping rates for this order"}, nil
		}
	}
	return nil, nil
}
