package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order row and decodes its JSON collections
// into the response, bypassing the domain aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// jsonAddress mirrors the persisted shape of an address column.
type jsonAddress struct {
	Country    string   `json:"country"`
	Region     string   `json:"region,omitempty"`
	PostalCode string   `json:"postal_code"`
	Lines      []string `json:"lines"`
}

// jsonMoney mirrors the persisted shape of a monetary amount.
type jsonMoney struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// jsonLineItem mirrors the persisted shape of one line item.
type jsonLineItem struct {
	ID                 uuid.UUID `json:"id"`
	SKU                string    `json:"sku"`
	Quantity           int       `json:"quantity"`
	UnitPrice          jsonMoney `json:"unit_price"`
	ShippingCategoryID uuid.UUID `json:"shipping_category_id"`
}

// jsonShippingRate mirrors the persisted shape of one candidate rate.
type jsonShippingRate struct {
	MethodID   uuid.UUID `json:"method_id"`
	MethodName string    `json:"method_name"`
	Cost       jsonMoney `json:"cost"`
	Selected   bool      `json:"selected"`
}

// jsonShipment mirrors the persisted shape of one shipment.
type jsonShipment struct {
	ID    uuid.UUID          `json:"id"`
	Rates []jsonShippingRate `json:"rates"`
}

// Handle executes the query and returns the order with its full checkout
// state. Returns an ObjectNotFoundError when no order with the requested
// identifier exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		id, storeID        uuid.UUID
		stage              int
		currency           string
		createdAt          time.Time
		rawItems           []byte
		rawShippingAddress []byte
		rawBillingAddress  []byte
		rawShipments       []byte
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			store_id,
			stage,
			currency,
			created_at,
			line_items,
			shipping_address,
			billing_address,
			shipments
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&storeID,
		&stage,
		&currency,
		&createdAt,
		&rawItems,
		&rawShippingAddress,
		&rawBillingAddress,
		&rawShipments,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		Stage:     order.Stage(stage),
		Currency:  currency,
		CreatedAt: createdAt,
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.StoreID, err = kernel.UUIDFromBytes(storeID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.LineItems, err = decodeLineItems(rawItems); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ShippingAddress, err = decodeAddress(rawShippingAddress); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.BillingAddress, err = decodeAddress(rawBillingAddress); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Shipments, err = decodeShipments(rawShipments); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func decodeAddress(raw []byte) (*AddressResponse, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var decoded jsonAddress
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}

	return &AddressResponse{
		Country:    decoded.Country,
		Region:     decoded.Region,
		PostalCode: decoded.PostalCode,
		Lines:      decoded.Lines,
	}, nil
}

func decodeLineItems(raw []byte) ([]LineItemResponse, error) {
	items := make([]LineItemResponse, 0)
	if len(raw) == 0 {
		return items, nil
	}

	var decoded []jsonLineItem
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}

	for _, item := range decoded {
		itemID, err := kernel.UUIDFromBytes(item.ID[:])
		if err != nil {
			return nil, err
		}
		categoryID, err := kernel.UUIDFromBytes(item.ShippingCategoryID[:])
		if err != nil {
			return nil, err
		}

		items = append(items, LineItemResponse{
			ID:                 itemID,
			SKU:                item.SKU,
			Quantity:           item.Quantity,
			UnitPrice:          MoneyResponse(item.UnitPrice),
			ShippingCategoryID: categoryID,
		})
	}

	return items, nil
}

func decodeShipments(raw []byte) ([]ShipmentResponse, error) {
	shipments := make([]ShipmentResponse, 0)
	if len(raw) == 0 {
		return shipments, nil
	}

	var decoded []jsonShipment
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}

	for _, shipment := range decoded {
		shipmentID, err := kernel.UUIDFromBytes(shipment.ID[:])
		if err != nil {
			return nil, err
		}

		rates := make([]ShippingRateResponse, 0, len(shipment.Rates))
		for _, rate := range shipment.Rates {
			methodID, rateErr := kernel.UUIDFromBytes(rate.MethodID[:])
			if rateErr != nil {
				return nil, rateErr
			}
			rates = append(rates, ShippingRateResponse{
				MethodID:   methodID,
				MethodName: rate.MethodName,
				Cost:       MoneyResponse(rate.Cost),
				Selected:   rate.Selected,
			})
		}

		shipments = append(shipments, ShipmentResponse{
			ID:    shipmentID,
			Rates: rates,
		})
	}

	return shipments, nil
}
