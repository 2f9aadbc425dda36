package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVendor(t *testing.T) {
	t.Run("creates active vendor", func(t *testing.T) {
		vendor, err := NewVendor(uuid.New(), "Carlos Andrade", VendorRoleVendor)

		require.NoError(t, err)
		assert.True(t, vendor.IsActive)
		assert.False(t, vendor.IsManager())
		assert.Nil(t, vendor.ManagerID)
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewVendor(uuid.New(), "Carlos Andrade", VendorRole("DIRECTOR"))

		assert.Error(t, err)
	})
}

func TestVendorAssignManager(t *testing.T) {
	tenantID := uuid.New()

	t.Run("assigns a direct manager", func(t *testing.T) {
		vendor, err := NewVendor(tenantID, "Carlos Andrade", VendorRoleVendor)
		require.NoError(t, err)
		managerID := uuid.New()

		require.NoError(t, vendor.AssignManager(managerID))
		require.NotNil(t, vendor.ManagerID)
		assert.Equal(t, managerID, *vendor.ManagerID)
	})

	t.Run("a manager cannot report to another manager", func(t *testing.T) {
		manager, err := NewVendor(tenantID, "Regina Souza", VendorRoleManager)
		require.NoError(t, err)

		assert.Error(t, manager.AssignManager(uuid.New()))
	})

	t.Run("a vendor cannot be their own manager", func(t *testing.T) {
		vendor, err := NewVendor(tenantID, "Carlos Andrade", VendorRoleVendor)
		require.NoError(t, err)

		assert.Error(t, vendor.AssignManager(vendor.ID))
	})

	t.Run("removes the manager link", func(t *testing.T) {
		vendor, err := NewVendor(tenantID, "Carlos Andrade", VendorRoleVendor)
		require.NoError(t, err)
		require.NoError(t, vendor.AssignManager(uuid.New()))

		vendor.RemoveManager()

		assert.Nil(t, vendor.ManagerID)
	})
}

func TestVendorSetCommissionPercent(t *testing.T) {
	t.Run("accepts percentages within bounds", func(t *testing.T) {
		manager, err := NewVendor(uuid.New(), "Regina Souza", VendorRoleManager)
		require.NoError(t, err)

		require.NoError(t, manager.SetCommissionPercent(decimal.NewFromInt(10)))
		assert.True(t, manager.CommissionPercent.Equal(decimal.NewFromInt(10)))
	})

	t.Run("rejects percentages above 100", func(t *testing.T) {
		manager, err := NewVendor(uuid.New(), "Regina Souza", VendorRoleManager)
		require.NoError(t, err)

		assert.Error(t, manager.SetCommissionPercent(decimal.NewFromInt(150)))
	})
}
