package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetIncompleteOrdersQueryIsNotConstructed = errors.New(
		"GetIncompleteOrdersQuery must be created via NewGetIncompleteOrdersQuery constructor",
	)
)

// GetIncompleteOrdersQuery retrieves all orders still moving through
// checkout. Returns orders in any stage before Complete, excluding canceled
// ones, for monitoring and management.
//
// Example:
//
//	query := NewGetIncompleteOrdersQuery()
//	handler := NewGetIncompleteOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get incomplete orders: %w", err)
//	}
//
//	fmt.Printf("Found %d orders in checkout\n", len(orders))
//	for _, o := range orders {
//	    fmt.Printf("Order %s at stage %s\n", o.ID, o.Stage)
//	}
type GetIncompleteOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetIncompleteOrdersQuery creates a query to retrieve in-flight orders.
// This is a parameterless query that fetches all non-terminal orders.
func NewGetIncompleteOrdersQuery() GetIncompleteOrdersQuery {
	return GetIncompleteOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetIncompleteOrdersQueryIsNotConstructed if validation fails.
func (q GetIncompleteOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetIncompleteOrdersQueryIsNotConstructed)
}

// GetIncompleteOrdersQueryResponse represents one in-flight order.
type GetIncompleteOrdersQueryResponse struct {
	ID        kernel.UUID
	StoreID   kernel.UUID
	Stage     order.Stage
	Currency  string
	CreatedAt time.Time
}
