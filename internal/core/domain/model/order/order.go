package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderIsTerminal is returned when a mutation is attempted on an order
	// in a terminal stage.
	ErrOrderIsTerminal = errors.New("order is in a terminal stage")

	// ErrOrderIsComplete is returned when Cancel is attempted on a completed
	// order.
	ErrOrderIsComplete = errors.New("completed order cannot be canceled")
)

// Order is the aggregate root of the checkout workflow. It carries the cart
// contents, the addresses, the shipments proposed by the estimator, and the
// current checkout stage.
//
// Invariants:
//   - the stage only moves forward along the checkout sequence, or to
//     Canceled via Cancel; the checkout machine enforces the exact one-step
//     transition table, the aggregate enforces forward-only monotonicity
//   - every line item's unit price is denominated in the order currency
//   - guard messages are transient: cleared at the start of each transition
//     attempt and on every successful transition
//
// Concurrency: the aggregate holds no locks. Callers must serialize
// transitions on the same order (the command handlers do this by running each
// transition inside its own unit-of-work transaction).
type Order struct {
	id        kernel.UUID
	storeID   kernel.UUID
	stage     Stage
	currency  string
	createdAt time.Time

	lineItems       []LineItem
	shippingAddress *Address
	billingAddress  *Address
	shipments       []*Shipment

	// guardMessages is the transient error list populated by failed
	// transition guards.
	guardMessages []string

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in the cart stage with no line items.
//
// Parameters:
//   - id: unique identifier for the order
//   - storeID: the storefront the order belongs to
//   - currency: ISO 4217 code all monetary amounts on the order share
//   - createdAt: creation timestamp supplied by the caller's clock
func NewOrder(id kernel.UUID, storeID kernel.UUID, currency string, createdAt time.Time) (*Order, error) {
	o := &Order{
		stage: StageCart,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setStoreID(storeID),
		o.setCurrency(currency),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence with its full state.
// Unlike NewOrder it accepts any valid stage and pre-existing collections.
func RestoreOrder(
	id kernel.UUID,
	storeID kernel.UUID,
	currency string,
	stage Stage,
	createdAt time.Time,
	lineItems []LineItem,
	shippingAddress *Address,
	billingAddress *Address,
	shipments []*Shipment,
) (*Order, error) {
	o, err := NewOrder(id, storeID, currency, createdAt)
	if err != nil {
		return nil, err
	}

	if err = stage.Validate(); err != nil {
		return nil, err
	}
	o.stage = stage

	for _, item := range lineItems {
		if err = o.validateLineItem(item); err != nil {
			return nil, err
		}
	}
	o.lineItems = lineItems

	if shippingAddress != nil {
		if err = shippingAddress.Validate(); err != nil {
			return nil, err
		}
		o.shippingAddress = shippingAddress
	}
	if billingAddress != nil {
		if err = billingAddress.Validate(); err != nil {
			return nil, err
		}
		o.billingAddress = billingAddress
	}

	for _, shipment := range shipments {
		if err = shipment.Validate(); err != nil {
			return nil, err
		}
	}
	o.shipments = shipments

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// StoreID returns the storefront the order belongs to.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// Stage returns the current checkout stage.
func (o *Order) Stage() Stage {
	return o.stage
}

// Currency returns the order's ISO 4217 currency code.
func (o *Order) Currency() string {
	return o.currency
}

// CreatedAt returns the order's creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// LineItems returns the order's line items.
func (o *Order) LineItems() []LineItem {
	return o.lineItems
}

// ShippingAddress returns the shipping address, or nil when not set.
func (o *Order) ShippingAddress() *Address {
	return o.shippingAddress
}

// BillingAddress returns the billing address, or nil when not set.
func (o *Order) BillingAddress() *Address {
	return o.billingAddress
}

// Shipments returns the order's proposed shipments.
func (o *Order) Shipments() []*Shipment {
	return o.shipments
}

// GuardMessages returns the transient messages recorded by the last failed
// transition attempt.
func (o *Order) GuardMessages() []string {
	return o.guardMessages
}

// AddLineItem appends a line item to the order.
//
// Business rules:
//   - the order must not be in a terminal stage
//   - the item's unit price currency must equal the order currency
func (o *Order) AddLineItem(item LineItem) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.stage.IsTerminal() {
		return ErrOrderIsTerminal
	}
	if err := o.validateLineItem(item); err != nil {
		return err
	}

	o.lineItems = append(o.lineItems, item)
	return nil
}

// RemoveLineItem deletes the line item with the given identifier.
// Returns an ObjectNotFoundError when no such item exists on the order.
func (o *Order) RemoveLineItem(itemID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.stage.IsTerminal() {
		return ErrOrderIsTerminal
	}

	for i, item := range o.lineItems {
		if item.ID().IsEqual(itemID) {
			o.lineItems = append(o.lineItems[:i], o.lineItems[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("lineItem", itemID.String())
}

// SetShippingAddress attaches a shipping address to the order. The address is
// a fresh immutable value; an address is never edited in place.
func (o *Order) SetShippingAddress(addr Address) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.stage.IsTerminal() {
		return ErrOrderIsTerminal
	}
	if err := addr.Validate(); err != nil {
		return err
	}

	o.shippingAddress = &addr
	return nil
}

// SetBillingAddress attaches a billing address to the order.
func (o *Order) SetBillingAddress(addr Address) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.stage.IsTerminal() {
		return ErrOrderIsTerminal
	}
	if err := addr.Validate(); err != nil {
		return err
	}

	o.billingAddress = &addr
	return nil
}

// ReplaceShipments discards any existing shipments and attaches the freshly
// proposed ones. Prior shipments are dropped, never merged.
func (o *Order) ReplaceShipments(shipments []*Shipment) error {
	if err := o.Validate(); err != nil {
		return err
	}
	for _, shipment := range shipments {
		if err := shipment.Validate(); err != nil {
			return err
		}
	}

	o.shipments = shipments
	return nil
}

// ItemsTotal returns the sum of all line item subtotals in the order
// currency. An order without line items totals zero.
func (o *Order) ItemsTotal() (kernel.Money, error) {
	if err := o.Validate(); err != nil {
		return kernel.Money{}, err
	}

	total, err := kernel.NewMoney(decimal.Zero, o.currency)
	if err != nil {
		return kernel.Money{}, err
	}

	for _, item := range o.lineItems {
		subtotal, subErr := item.Subtotal()
		if subErr != nil {
			return kernel.Money{}, subErr
		}
		total, subErr = total.Add(subtotal)
		if subErr != nil {
			return kernel.Money{}, subErr
		}
	}

	return total, nil
}

// RecordGuardFailure appends human-readable messages explaining why a
// transition attempt was refused. The list is transient and cleared by
// ClearGuardMessages and on every successful transition.
func (o *Order) RecordGuardFailure(messages ...string) {
	o.guardMessages = append(o.guardMessages, messages...)
}

// ClearGuardMessages empties the transient guard message list. The checkout
// machine calls this at the start of each transition attempt.
func (o *Order) ClearGuardMessages() {
	o.guardMessages = nil
}

// AdvanceTo commits a forward stage transition. The checkout machine is
// responsible for the exact one-step transition table; the aggregate rejects
// anything that is not a strict forward move from a non-terminal stage.
// A successful transition clears the transient guard message list.
func (o *Order) AdvanceTo(target Stage) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if o.stage.IsTerminal() {
		return ErrOrderIsTerminal
	}
	if target == StageCanceled {
		return errs.NewValueIsInvalidErrorWithCause("stage",
			errors.New("cancellation goes through Cancel, not AdvanceTo"))
	}
	if target <= o.stage {
		return errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%s is not ahead of %s", target, o.stage))
	}

	o.stage = target
	o.guardMessages = nil
	return nil
}

// Cancel moves the order to the Canceled stage, bypassing forward-transition
// guards. Allowed from any stage except Complete; canceling an already
// canceled order is a no-op.
func (o *Order) Cancel() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.stage == StageComplete {
		return ErrOrderIsComplete
	}
	if o.stage == StageCanceled {
		return nil
	}

	o.stage = StageCanceled
	o.guardMessages = nil
	return nil
}

func (o *Order) validateLineItem(item LineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.UnitPrice().Currency() != o.currency {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("item currency %s does not match order currency %s",
				item.UnitPrice().Currency(), o.currency))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setCurrency(currency string) error {
	// Reuse Money's currency validation so order and money rules never drift.
	if _, err := kernel.NewMoney(decimal.Zero, currency); err != nil {
		return err
	}
	o.currency = currency
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
