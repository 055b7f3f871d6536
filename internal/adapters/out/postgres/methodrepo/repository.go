package methodrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipping"

	"gorm.io/gorm"
)

// GormShippingMethodRepository implements ShippingMethodRepository using GORM.
type GormShippingMethodRepository struct {
	db *gorm.DB
}

// NewGormShippingMethodRepository creates a new GORM shipping method
// repository. Method configuration is read-mostly and carries no aggregate
// tracking.
func NewGormShippingMethodRepository(db *gorm.DB) *GormShippingMethodRepository {
	return &GormShippingMethodRepository{db: db}
}

// Add saves a new shipping method configuration to the database.
func (r *GormShippingMethodRepository) Add(ctx context.Context, method *shipping.Method) error {
	if err := method.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(method)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetForStore retrieves the methods offered by the given store: methods
// explicitly associated with it plus methods with no store association.
// The store filter runs in memory because associations live in a JSON column;
// method configuration is small enough that loading it whole is the simpler
// trade.
func (r *GormShippingMethodRepository) GetForStore(
	ctx context.Context,
	storeID kernel.UUID,
) ([]*shipping.Method, error) {
	if err := storeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MethodDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	methods := make([]*shipping.Method, 0, len(dtos))
	for _, dto := range dtos {
		method, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		if method.ServesStore(storeID) {
			methods = append(methods, method)
		}
	}

	return methods, nil
}
