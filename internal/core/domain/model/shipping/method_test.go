package shipping_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usZone(t *testing.T) shipping.Zone {
	t.Helper()
	zone, err := shipping.NewZone("US", []shipping.ZoneMember{{Country: "US"}})
	require.NoError(t, err)
	return zone
}

func flatRate(t *testing.T, amount string) shipping.FlatRateCalculator {
	t.Helper()
	calc, err := shipping.NewFlatRateCalculator(money(t, amount, "USD"))
	require.NoError(t, err)
	return calc
}

func TestNewMethod(t *testing.T) {
	t.Run("creates valid method", func(t *testing.T) {
		id := kernel.NewUUID()
		categoryID := kernel.NewUUID()

		method, err := shipping.NewMethod(id, "UPS Ground",
			[]kernel.UUID{categoryID}, []shipping.Zone{usZone(t)}, nil, flatRate(t, "50"))

		require.NoError(t, err)
		require.NoError(t, method.Validate())
		assert.True(t, method.ID().IsEqual(id))
		assert.Equal(t, "UPS Ground", method.Name())
		assert.Len(t, method.CategoryIDs(), 1)
		assert.Len(t, method.Zones(), 1)
		assert.Empty(t, method.StoreIDs())
		assert.NotNil(t, method.Calculator())
	})

	t.Run("rejects missing name", func(t *testing.T) {
		_, err := shipping.NewMethod(kernel.NewUUID(), "",
			[]kernel.UUID{kernel.NewUUID()}, []shipping.Zone{usZone(t)}, nil, flatRate(t, "50"))
		require.Error(t, err)
	})

	t.Run("rejects missing categories", func(t *testing.T) {
		_, err := shipping.NewMethod(kernel.NewUUID(), "UPS Ground",
			nil, []shipping.Zone{usZone(t)}, nil, flatRate(t, "50"))
		require.Error(t, err)
	})

	t.Run("rejects missing zones", func(t *testing.T) {
		_, err := shipping.NewMethod(kernel.NewUUID(), "UPS Ground",
			[]kernel.UUID{kernel.NewUUID()}, nil, nil, flatRate(t, "50"))
		require.Error(t, err)
	})

	t.Run("rejects missing calculator", func(t *testing.T) {
		_, err := shipping.NewMethod(kernel.NewUUID(), "UPS Ground",
			[]kernel.UUID{kernel.NewUUID()}, []shipping.Zone{usZone(t)}, nil, nil)
		require.Error(t, err)
	})
}

func TestMethod_ServesStore(t *testing.T) {
	categoryID := kernel.NewUUID()
	storeID := kernel.NewUUID()

	t.Run("no associations means every store", func(t *testing.T) {
		method, err := shipping.NewMethod(kernel.NewUUID(), "UPS Ground",
			[]kernel.UUID{categoryID}, []shipping.Zone{usZone(t)}, nil, flatRate(t, "50"))
		require.NoError(t, err)

		assert.True(t, method.ServesStore(storeID))
	})

	t.Run("explicit associations restrict", func(t *testing.T) {
		method, err := shipping.NewMethod(kernel.NewUUID(), "UPS Ground",
			[]kernel.UUID{categoryID}, []shipping.Zone{usZone(t)},
			[]kernel.UUID{storeID}, flatRate(t, "50"))
		require.NoError(t, err)

		assert.True(t, method.ServesStore(storeID))
		assert.False(t, method.ServesStore(kernel.NewUUID()))
	})
}

func TestMethod_ServesAddress(t *testing.T) {
	method, err := shipping.NewMethod(kernel.NewUUID(), "UPS Ground",
		[]kernel.UUID{kernel.NewUUID()}, []shipping.Zone{usZone(t)}, nil, flatRate(t, "50"))
	require.NoError(t, err)

	assert.True(t, method.ServesAddress(mustAddress(t, "US", "CA")))
	assert.False(t, method.ServesAddress(mustAddress(t, "IN", "")))
}

func TestMethod_CarriesAnyCategory(t *testing.T) {
	carried := kernel.NewUUID()
	method, err := shipping.NewMethod(kernel.NewUUID(), "UPS Ground",
		[]kernel.UUID{carried}, []shipping.Zone{usZone(t)}, nil, flatRate(t, "50"))
	require.NoError(t, err)

	assert.True(t, method.CarriesAnyCategory([]kernel.UUID{carried, kernel.NewUUID()}))
	assert.False(t, method.CarriesAnyCategory([]kernel.UUID{kernel.NewUUID()}))
	assert.False(t, method.CarriesAnyCategory(nil))
}
