package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipping"
)

// ShippingMethodRepository defines the persistence contract for shipping
// method configuration. Loading configuration is the I/O prerequisite the
// estimator itself never performs: handlers load the methods here, then hand
// them to the estimator as plain data.
type ShippingMethodRepository interface {
	// Add persists a new shipping method configuration.
	Add(ctx context.Context, method *shipping.Method) error

	// GetForStore retrieves the methods offered by the given store: methods
	// explicitly associated with it plus methods with no store association
	// (the permissive default).
	GetForStore(ctx context.Context, storeID kernel.UUID) ([]*shipping.Method, error)
}
