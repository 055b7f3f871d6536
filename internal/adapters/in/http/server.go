// Package http exposes the checkout workflow over a JSON API built on Echo.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	addLineItemHandler        commands.AddLineItemCommandHandler
	setShippingAddressHandler commands.SetShippingAddressCommandHandler
	advanceOrderHandler       commands.AdvanceOrderCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler

	getOrderHandler             queries.GetOrderQueryHandler
	getIncompleteOrdersHandler  queries.GetIncompleteOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	addLineItemHandler commands.AddLineItemCommandHandler,
	setShippingAddressHandler commands.SetShippingAddressCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getIncompleteOrdersHandler queries.GetIncompleteOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		addLineItemHandler:          addLineItemHandler,
		setShippingAddressHandler:   setShippingAddressHandler,
		advanceOrderHandler:         advanceOrderHandler,
		cancelOrderHandler:          cancelOrderHandler,
		getOrderHandler:             getOrderHandler,
		getIncompleteOrdersHandler:  getIncompleteOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/incomplete", s.GetIncompleteOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/line-items", s.AddLineItem)
	api.PUT("/orders/:orderID/address", s.SetShippingAddress)
	api.POST("/orders/:orderID/advance", s.AdvanceOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
}

// ErrorResponse is the JSON body returned for every failed request.
// Details carries guard messages for checkout veto responses.
type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// MoneyPayload carries a monetary amount as its exact decimal string plus
// the ISO 4217 currency code.
type MoneyPayload struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	StoreID  string `json:"store_id"`
	Currency string `json:"currency"`
}

// CreateOrderResponse returns the identifier of the new cart.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// AddLineItemRequest is the body of POST /api/v1/orders/:orderID/line-items.
type AddLineItemRequest struct {
	SKU                string       `json:"sku"`
	Quantity           int          `json:"quantity"`
	UnitPrice          MoneyPayload `json:"unit_price"`
	ShippingCategoryID string       `json:"shipping_category_id"`
}

// SetAddressRequest is the body of PUT /api/v1/orders/:orderID/address.
type SetAddressRequest struct {
	Country    string   `json:"country"`
	Region     string   `json:"region,omitempty"`
	PostalCode string   `json:"postal_code"`
	Lines      []string `json:"lines"`
}

// AddressPayload carries a postal address in order responses.
type AddressPayload struct {
	Country    string   `json:"country"`
	Region     string   `json:"region,omitempty"`
	PostalCode string   `json:"postal_code"`
	Lines      []string `json:"lines"`
}

// LineItemPayload carries one line item in order responses.
type LineItemPayload struct {
	ID                 string       `json:"id"`
	SKU                string       `json:"sku"`
	Quantity           int          `json:"quantity"`
	UnitPrice          MoneyPayload `json:"unit_price"`
	ShippingCategoryID string       `json:"shipping_category_id"`
}

// ShippingRatePayload carries one candidate rate in order responses.
type ShippingRatePayload struct {
	MethodID   string       `json:"method_id"`
	MethodName string       `json:"method_name"`
	Cost       MoneyPayload `json:"cost"`
	Selected   bool         `json:"selected"`
}

// ShipmentPayload carries one proposed shipment in order responses.
type ShipmentPayload struct {
	ID    string                `json:"id"`
	Rates []ShippingRatePayload `json:"rates"`
}

// OrderResponse is the full order representation returned by GET
// /api/v1/orders/:orderID.
type OrderResponse struct {
	ID              string            `json:"id"`
	StoreID         string            `json:"store_id"`
	Stage           string            `json:"stage"`
	Currency        string            `json:"currency"`
	CreatedAt       time.Time         `json:"created_at"`
	LineItems       []LineItemPayload `json:"line_items"`
	ShippingAddress *AddressPayload   `json:"shipping_address,omitempty"`
	BillingAddress  *AddressPayload   `json:"billing_address,omitempty"`
	Shipments       []ShipmentPayload `json:"shipments"`
}

// OrderSummaryResponse is one element of the incomplete order listing.
type OrderSummaryResponse struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Stage     string    `json:"stage"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - opens a new cart for a store.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return badRequest(ctx, "Invalid store_id: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, storeID, req.Currency)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// AddLineItem handles POST /api/v1/orders/:orderID/line-items.
func (s *Server) AddLineItem(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req AddLineItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	amount, err := decimal.NewFromString(req.UnitPrice.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid unit price amount: "+err.Error())
	}

	unitPrice, err := kernel.NewMoney(amount, req.UnitPrice.Currency)
	if err != nil {
		return badRequest(ctx, "Invalid unit price: "+err.Error())
	}

	categoryID, err := kernel.UUIDFromString(req.ShippingCategoryID)
	if err != nil {
		return badRequest(ctx, "Invalid shipping_category_id: "+err.Error())
	}

	cmd, err := commands.NewAddLineItemCommand(orderID, req.SKU, req.Quantity, unitPrice, categoryID)
	if err != nil {
		return badRequest(ctx, "Invalid line item data: "+err.Error())
	}

	if handleErr := s.addLineItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetShippingAddress handles PUT /api/v1/orders/:orderID/address.
func (s *Server) SetShippingAddress(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req SetAddressRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	address, err := order.NewAddress(req.Country, req.Region, req.PostalCode, req.Lines...)
	if err != nil {
		return badRequest(ctx, "Invalid address: "+err.Error())
	}

	cmd, err := commands.NewSetShippingAddressCommand(orderID, address)
	if err != nil {
		return badRequest(ctx, "Invalid address data: "+err.Error())
	}

	if handleErr := s.setShippingAddressHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrder handles POST /api/v1/orders/:orderID/advance - moves the order
// to its next checkout stage. Guard vetoes come back as 422 with the customer
// facing messages in the details field.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:orderID - retrieves one order with its
// full checkout state.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	details, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return internalError(ctx, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, orderResponseFromQuery(details))
}

// GetIncompleteOrders handles GET /api/v1/orders/incomplete - lists every
// order still moving through checkout.
func (s *Server) GetIncompleteOrders(ctx echo.Context) error {
	query := queries.NewGetIncompleteOrdersQuery()

	orders, err := s.getIncompleteOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	response := make([]OrderSummaryResponse, len(orders))
	for i, o := range orders {
		response[i] = OrderSummaryResponse{
			ID:        o.ID.String(),
			StoreID:   o.StoreID.String(),
			Stage:     o.Stage.String(),
			Currency:  o.Currency,
			CreatedAt: o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func pathOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("orderID"))
}

// commandError maps use case failures onto HTTP statuses: missing orders to
// 404, guard vetoes to 422, transition and lifecycle conflicts to 409,
// validation failures to 400.
func commandError(ctx echo.Context, err error) error {
	var guardErr *services.GuardError
	if errors.As(err, &guardErr) {
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "Checkout cannot advance to " + guardErr.Stage.String(),
			Details: guardErr.Messages,
		})
	}

	if errors.Is(err, services.ErrInvalidTransition) ||
		errors.Is(err, order.ErrOrderIsComplete) ||
		errors.Is(err, order.ErrOrderIsTerminal) {
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}

	if errors.Is(err, errs.ErrValueIsRequired) || errors.Is(err, errs.ErrValueIsInvalid) {
		return badRequest(ctx, err.Error())
	}

	return internalError(ctx, "Failed to process request")
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

func orderResponseFromQuery(details queries.GetOrderQueryResponse) OrderResponse {
	items := make([]LineItemPayload, len(details.LineItems))
	for i, item := range details.LineItems {
		items[i] = LineItemPayload{
			ID:                 item.ID.String(),
			SKU:                item.SKU,
			Quantity:           item.Quantity,
			UnitPrice:          MoneyPayload(item.UnitPrice),
			ShippingCategoryID: item.ShippingCategoryID.String(),
		}
	}

	shipments := make([]ShipmentPayload, len(details.Shipments))
	for i, shipment := range details.Shipments {
		rates := make([]ShippingRatePayload, len(shipment.Rates))
		for j, rate := range shipment.Rates {
			rates[j] = ShippingRatePayload{
				MethodID:   rate.MethodID.String(),
				MethodName: rate.MethodName,
				Cost:       MoneyPayload(rate.Cost),
				Selected:   rate.Selected,
			}
		}
		shipments[i] = ShipmentPayload{
			ID:    shipment.ID.String(),
			Rates: rates,
		}
	}

	return OrderResponse{
		ID:              details.ID.String(),
		StoreID:         details.StoreID.String(),
		Stage:           details.Stage.String(),
		Currency:        details.Currency,
		CreatedAt:       details.CreatedAt,
		LineItems:       items,
		ShippingAddress: addressPayload(details.ShippingAddress),
		BillingAddress:  addressPayload(details.BillingAddress),
		Shipments:       shipments,
	}
}

func addressPayload(addr *queries.AddressResponse) *AddressPayload {
	if addr == nil {
		return nil
	}
	return &AddressPayload{
		Country:    addr.Country,
		Region:     addr.Region,
		PostalCode: addr.PostalCode,
		Lines:      addr.Lines,
	}
}
