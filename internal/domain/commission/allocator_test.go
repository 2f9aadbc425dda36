package commission

import (
	"testing"
	"time"

	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInput(amount float64) AllocationInput {
	return AllocationInput{
		TenantID:      uuid.New(),
		SaleID:        uuid.New(),
		InstallmentID: uuid.New(),
		SaleAmount:    decimal.NewFromFloat(amount),
		DueDate:       time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
	}
}

func newTestAdminConfig(t *testing.T, percent float64) *AdminConfig {
	t.Helper()
	config, err := NewAdminConfig(uuid.New(), uuid.New(), decimal.NewFromFloat(percent))
	require.NoError(t, err)
	return config
}

func recordsByType(records []*Record) map[BeneficiaryType]*Record {
	out := make(map[BeneficiaryType]*Record, len(records))
	for _, r := range records {
		out[r.BeneficiaryType] = r
	}
	return out
}

func TestAllocatorAllocate(t *testing.T) {
	allocator := NewAllocator()

	t.Run("splits installment between manager and admin", func(t *testing.T) {
		input := newTestInput(1000)
		manager := &ManagerShare{ManagerID: uuid.New(), Percent: decimal.NewFromInt(10)}

		records, err := allocator.Allocate(input, uuid.New(), manager, newTestAdminConfig(t, 1.5))

		require.NoError(t, err)
		require.Len(t, records, 2)
		byType := recordsByType(records)
		assert.True(t, byType[BeneficiaryManager].Amount.Equal(decimal.NewFromInt(100)))
		assert.True(t, byType[BeneficiaryAdmin].Amount.Equal(decimal.NewFromFloat(15)))
	})

	t.Run("every record starts pending and keyed to the installment", func(t *testing.T) {
		input := newTestInput(500)
		vendorID := uuid.New()
		manager := &ManagerShare{ManagerID: uuid.New(), Percent: decimal.NewFromInt(8)}

		records, err := allocator.Allocate(input, vendorID, manager, newTestAdminConfig(t, 2))

		require.NoError(t, err)
		for _, record := range records {
			assert.Equal(t, StatusPending, record.Status)
			assert.Equal(t, input.InstallmentID, record.InstallmentID)
			assert.Equal(t, input.SaleID, record.SaleID)
			assert.Equal(t, vendorID, record.VendorID)
			assert.Equal(t, input.DueDate, record.DueDate)
		}
	})

	t.Run("vendor without a manager yields only the admin record", func(t *testing.T) {
		input := newTestInput(1000)

		records, err := allocator.Allocate(input, uuid.New(), nil, newTestAdminConfig(t, 1.5))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, BeneficiaryAdmin, records[0].BeneficiaryType)
	})

	t.Run("fails fast when admin config is missing", func(t *testing.T) {
		input := newTestInput(1000)

		records, err := allocator.Allocate(input, uuid.New(), nil, nil)

		assert.ErrorIs(t, err, shared.ErrConfigurationMissing)
		assert.Nil(t, records)
	})

	t.Run("fails fast when admin config is inactive", func(t *testing.T) {
		input := newTestInput(1000)
		config := newTestAdminConfig(t, 1.5)
		config.Deactivate()

		_, err := allocator.Allocate(input, uuid.New(), nil, config)

		assert.ErrorIs(t, err, shared.ErrConfigurationMissing)
	})

	t.Run("rounds commission amounts to cents", func(t *testing.T) {
		input := newTestInput(333.33)
		manager := &ManagerShare{ManagerID: uuid.New(), Percent: decimal.NewFromFloat(7.5)}

		records, err := allocator.Allocate(input, uuid.New(), manager, newTestAdminConfig(t, 1.5))

		require.NoError(t, err)
		byType := recordsByType(records)
		// 333.33 * 7.5% = 24.99975 -> 25.00
		assert.True(t, byType[BeneficiaryManager].Amount.Equal(decimal.NewFromInt(25)))
		// 333.33 * 1.5% = 4.99995 -> 5.00
		assert.True(t, byType[BeneficiaryAdmin].Amount.Equal(decimal.NewFromInt(5)))
	})
}

func TestAmountFor(t *testing.T) {
	cases := []struct {
		name    string
		amount  string
		percent string
		want    string
	}{
		{"exact split", "1000", "10", "100"},
		{"half cent rounds away from zero", "50.50", "5", "2.53"},
		{"repeating fraction", "100", "33.33", "33.33"},
		{"tiny sale", "0.01", "5", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			percent := decimal.RequireFromString(tc.percent)
			want := decimal.RequireFromString(tc.want)

			assert.True(t, AmountFor(amount, percent).Equal(want))
		})
	}
}
