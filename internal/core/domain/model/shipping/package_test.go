package shipping_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackage(t *testing.T) {
	t.Run("creates valid package", func(t *testing.T) {
		storeID := kernel.NewUUID()
		item, err := order.NewLineItem(
			kernel.NewUUID(), "SKU-001", 2, money(t, "25", "USD"), kernel.NewUUID())
		require.NoError(t, err)

		pkg, err := shipping.NewPackage(storeID, mustAddress(t, "US", "CA"), []order.LineItem{item}, "USD")

		require.NoError(t, err)
		require.NoError(t, pkg.Validate())
		assert.True(t, pkg.StoreID().IsEqual(storeID))
		assert.Equal(t, "USD", pkg.Currency())
		assert.Equal(t, 2, pkg.TotalQuantity())
	})

	t.Run("rejects unconstructed destination", func(t *testing.T) {
		_, err := shipping.NewPackage(kernel.NewUUID(), order.Address{}, nil, "USD")
		require.Error(t, err)
	})
}

func TestPackage_RequiredCategoryIDs(t *testing.T) {
	t.Run("deduplicates categories across items", func(t *testing.T) {
		shared := kernel.NewUUID()
		other := kernel.NewUUID()

		items := make([]order.LineItem, 0, 3)
		for _, categoryID := range []kernel.UUID{shared, shared, other} {
			item, err := order.NewLineItem(
				kernel.NewUUID(), "SKU-001", 1, money(t, "25", "USD"), categoryID)
			require.NoError(t, err)
			items = append(items, item)
		}

		pkg, err := shipping.NewPackage(kernel.NewUUID(), mustAddress(t, "US", "CA"), items, "USD")
		require.NoError(t, err)

		assert.Len(t, pkg.RequiredCategoryIDs(), 2)
	})
}

func TestPackage_ItemsTotal(t *testing.T) {
	pkg := packageWithItems(t, 2, 1)

	total, err := pkg.ItemsTotal()

	require.NoError(t, err)
	assert.True(t, total.IsEqual(money(t, "75", "USD")))
}

func TestBuildPackages(t *testing.T) {
	t.Run("builds one package per order", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USD", time.Now())
		require.NoError(t, err)
		item, err := order.NewLineItem(
			kernel.NewUUID(), "SKU-001", 1, money(t, "25", "USD"), kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, o.AddLineItem(item))
		require.NoError(t, o.SetShippingAddress(mustAddress(t, "US", "CA")))

		packages, err := shipping.BuildPackages(o)

		require.NoError(t, err)
		require.Len(t, packages, 1)
		assert.True(t, packages[0].StoreID().IsEqual(o.StoreID()))
		assert.Len(t, packages[0].Items(), 1)
	})

	t.Run("requires a shipping address", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USD", time.Now())
		require.NoError(t, err)

		_, err = shipping.BuildPackages(o)

		require.Error(t, err)
	})
}
