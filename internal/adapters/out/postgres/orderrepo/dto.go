// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order is a single consistency boundary, so its collections (line items,
// addresses, shipments) are stored as JSON columns on the orders row rather
// than as separate tables. They are only ever read and written through the
// aggregate.
type OrderDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	StoreID         uuid.UUID      `gorm:"type:uuid;index"`
	Stage           int            `gorm:"index"`
	Currency        string         `gorm:"type:char(3)"`
	CreatedAt       time.Time      `gorm:"index"`
	LineItems       []LineItemDTO  `gorm:"serializer:json;type:jsonb"`
	ShippingAddress *AddressDTO    `gorm:"serializer:json;type:jsonb"`
	BillingAddress  *AddressDTO    `gorm:"serializer:json;type:jsonb"`
	Shipments       []ShipmentDTO  `gorm:"serializer:json;type:jsonb"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// MoneyDTO stores a monetary amount as its exact decimal string plus the
// ISO 4217 currency code.
type MoneyDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// AddressDTO stores a postal address inside the order's JSON columns.
type AddressDTO struct {
	Country    string   `json:"country"`
	Region     string   `json:"region,omitempty"`
	PostalCode string   `json:"postal_code"`
	Lines      []string `json:"lines"`
}

// LineItemDTO stores one purchasable position inside the order's JSON column.
type LineItemDTO struct {
	ID                 uuid.UUID `json:"id"`
	SKU                string    `json:"sku"`
	Quantity           int       `json:"quantity"`
	UnitPrice          MoneyDTO  `json:"unit_price"`
	ShippingCategoryID uuid.UUID `json:"shipping_category_id"`
}

// ShippingRateDTO stores one candidate rate of a shipment.
type ShippingRateDTO struct {
	MethodID   uuid.UUID `json:"method_id"`
	MethodName string    `json:"method_name"`
	Cost       MoneyDTO  `json:"cost"`
	Selected   bool      `json:"selected"`
}

// ShipmentDTO stores one shipment with its candidate rates.
type ShipmentDTO struct {
	ID    uuid.UUID         `json:"id"`
	Rates []ShippingRateDTO `json:"rates"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]LineItemDTO, 0, len(aggregate.LineItems()))
	for _, item := range aggregate.LineItems() {
		items = append(items, LineItemDTO{
			ID:                 item.ID().Bytes(),
			SKU:                item.SKU(),
			Quantity:           item.Quantity(),
			UnitPrice:          moneyFromDomain(item.UnitPrice()),
			ShippingCategoryID: item.ShippingCategoryID().Bytes(),
		})
	}

	shipments := make([]ShipmentDTO, 0, len(aggregate.Shipments()))
	for _, shipment := range aggregate.Shipments() {
		rates := make([]ShippingRateDTO, 0, len(shipment.Rates()))
		for _, rate := range shipment.Rates() {
			rates = append(rates, ShippingRateDTO{
				MethodID:   rate.MethodID().Bytes(),
				MethodName: rate.MethodName(),
				Cost:       moneyFromDomain(rate.Cost()),
				Selected:   rate.IsSelected(),
			})
		}
		shipments = append(shipments, ShipmentDTO{
			ID:    shipment.ID().Bytes(),
			Rates: rates,
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		StoreID:         aggregate.StoreID().Bytes(),
		Stage:           int(aggregate.Stage()),
		Currency:        aggregate.Currency(),
		CreatedAt:       aggregate.CreatedAt(),
		LineItems:       items,
		ShippingAddress: addressFromDomain(aggregate.ShippingAddress()),
		BillingAddress:  addressFromDomain(aggregate.BillingAddress()),
		Shipments:       shipments,
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.LineItems))
	for _, itemDTO := range dto.LineItems {
		item, itemErr := lineItemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	shippingAddress, err := addressToDomain(dto.ShippingAddress)
	if err != nil {
		return nil, err
	}

	billingAddress, err := addressToDomain(dto.BillingAddress)
	if err != nil {
		return nil, err
	}

	shipments := make([]*order.Shipment, 0, len(dto.Shipments))
	for _, shipmentDTO := range dto.Shipments {
		shipment, shipmentErr := shipmentToDomain(shipmentDTO)
		if shipmentErr != nil {
			return nil, shipmentErr
		}
		shipments = append(shipments, shipment)
	}

	return order.RestoreOrder(id, storeID, dto.Currency, order.Stage(dto.Stage),
		dto.CreatedAt, items, shippingAddress, billingAddress, shipments)
}

func moneyFromDomain(m kernel.Money) MoneyDTO {
	return MoneyDTO{
		Amount:   m.Amount().String(),
		Currency: m.Currency(),
	}
}

func moneyToDomain(dto MoneyDTO) (kernel.Money, error) {
	return kernel.MoneyFromString(dto.Amount, dto.Currency)
}

func addressFromDomain(addr *order.Address) *AddressDTO {
	if addr == nil {
		return nil
	}
	return &AddressDTO{
		Country:    addr.Country(),
		Region:     addr.Region(),
		PostalCode: addr.PostalCode(),
		Lines:      addr.Lines(),
	}
}

func addressToDomain(dto *AddressDTO) (*order.Address, error) {
	if dto == nil {
		return nil, nil
	}
	addr, err := order.NewAddress(dto.Country, dto.Region, dto.PostalCode, dto.Lines...)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func lineItemToDomain(dto LineItemDTO) (order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	categoryID, err := kernel.UUIDFromBytes(dto.ShippingCategoryID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	unitPrice, err := moneyToDomain(dto.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.NewLineItem(id, dto.SKU, dto.Quantity, unitPrice, categoryID)
}

func shipmentToDomain(dto ShipmentDTO) (*order.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	rates := make([]*order.ShippingRate, 0, len(dto.Rates))
	for _, rateDTO := range dto.Rates {
		methodID, rateErr := kernel.UUIDFromBytes(rateDTO.MethodID[:])
		if rateErr != nil {
			return nil, rateErr
		}

		cost, rateErr := moneyToDomain(rateDTO.Cost)
		if rateErr != nil {
			return nil, rateErr
		}

		rate, rateErr := order.RestoreShippingRate(methodID, rateDTO.MethodName, cost, rateDTO.Selected)
		if rateErr != nil {
			return nil, rateErr
		}
		rates = append(rates, rate)
	}

	return order.NewShipment(id, rates)
}
