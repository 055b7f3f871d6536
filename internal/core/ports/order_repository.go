package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Failures are infrastructure errors propagated unchanged; they are never
// interpreted as business outcomes by the core.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllIncomplete retrieves all orders not yet complete or canceled.
	GetAllIncomplete(ctx context.Context) ([]*order.Order, error)

	// GetCartsCreatedBefore retrieves cart-stage orders created before the
	// cutoff. Used by the abandoned-cart expiry job.
	GetCartsCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
