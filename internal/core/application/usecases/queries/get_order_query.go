package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its full checkout state: line items,
// addresses, and proposed shipments with their candidate rates.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	details, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %s at stage %s with %d items\n",
//	    details.ID, details.Stage, len(details.LineItems))
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the order with the given identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse represents one order with its full checkout state.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	StoreID         kernel.UUID
	Stage           order.Stage
	Currency        string
	CreatedAt       time.Time
	LineItems       []LineItemResponse
	ShippingAddress *AddressResponse
	BillingAddress  *AddressResponse
	Shipments       []ShipmentResponse
}

// MoneyResponse carries a monetary amount as its exact decimal string plus
// the ISO 4217 currency code.
type MoneyResponse struct {
	Amount   string
	Currency string
}

// AddressResponse carries a postal address of the order.
type AddressResponse struct {
	Country    string
	Region     string
	PostalCode string
	Lines      []string
}

// LineItemResponse carries one purchasable position of the order.
type LineItemResponse struct {
	ID                 kernel.UUID
	SKU                string
	Quantity           int
	UnitPrice          MoneyResponse
	ShippingCategoryID kernel.UUID
}

// ShippingRateResponse carries one candidate rate of a shipment.
type ShippingRateResponse struct {
	MethodID   kernel.UUID
	MethodName string
	Cost       MoneyResponse
	Selected   bool
}

// ShipmentResponse carries one proposed shipment with its candidate rates.
type ShipmentResponse struct {
	ID    kernel.UUID
	Rates []ShippingRateResponse
}
