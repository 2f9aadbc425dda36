package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTier(t *testing.T) {
	t.Run("creates valid tier", func(t *testing.T) {
		tier, err := NewTier("prata", "Prata", decimal.NewFromFloat(499.90), decimal.NewFromInt(25))

		require.NoError(t, err)
		assert.Equal(t, "prata", tier.Code())
		assert.True(t, tier.Percent().Equal(decimal.NewFromInt(25)))
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewTier("", "Prata", decimal.NewFromFloat(499.90), decimal.NewFromInt(25))

		assert.Error(t, err)
	})

	t.Run("fails with percentage above 100", func(t *testing.T) {
		_, err := NewTier("prata", "Prata", decimal.NewFromFloat(499.90), decimal.NewFromInt(101))

		assert.Error(t, err)
	})

	t.Run("fails with negative threshold", func(t *testing.T) {
		_, err := NewTier("prata", "Prata", decimal.NewFromInt(-1), decimal.NewFromInt(25))

		assert.Error(t, err)
	})
}

func TestNewTierTable(t *testing.T) {
	t.Run("rejects non-ascending thresholds", func(t *testing.T) {
		a, _ := NewTier("a", "A", decimal.NewFromInt(500), decimal.NewFromInt(10))
		b, _ := NewTier("b", "B", decimal.NewFromInt(300), decimal.NewFromInt(20))

		_, err := NewTierTable([]Tier{a, b})

		assert.Error(t, err)
	})

	t.Run("rejects non-ascending percentages", func(t *testing.T) {
		a, _ := NewTier("a", "A", decimal.NewFromInt(300), decimal.NewFromInt(20))
		b, _ := NewTier("b", "B", decimal.NewFromInt(500), decimal.NewFromInt(20))

		_, err := NewTierTable([]Tier{a, b})

		assert.Error(t, err)
	})
}

func TestTierFor(t *testing.T) {
	table := DefaultTierTable()

	tests := []struct {
		name        string
		subtotal    string
		wantCode    string
		wantPercent int64
		wantFound   bool
	}{
		{"below lowest threshold", "299.89", "", 0, false},
		{"exactly on lowest threshold takes the tier", "299.90", TierCodeBronze, 20, true},
		{"between first and second", "450.00", TierCodeBronze, 20, true},
		{"exactly on middle threshold takes the higher tier", "499.90", TierCodePrata, 25, true},
		{"mid ladder", "650.00", TierCodePrata, 25, true},
		{"exactly on top threshold", "699.90", TierCodeOuro, 30, true},
		{"far above top threshold", "10000.00", TierCodeOuro, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, err := decimal.NewFromString(tt.subtotal)
			require.NoError(t, err)

			tier, found := table.TierFor(subtotal)

			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantCode, tier.Code())
				assert.True(t, tier.Percent().Equal(decimal.NewFromInt(tt.wantPercent)))
			}
		})
	}
}

func TestTableFromRecords(t *testing.T) {
	t.Run("skips inactive records", func(t *testing.T) {
		tenantID := uuid.New()
		records := DefaultDiscountTierRecords(tenantID)
		records[2].IsActive = false

		table, err := TableFromRecords(records)

		require.NoError(t, err)
		assert.Len(t, table.Tiers(), 2)
	})

	t.Run("default records rebuild the default table", func(t *testing.T) {
		records := DefaultDiscountTierRecords(uuid.New())

		table, err := TableFromRecords(records)

		require.NoError(t, err)
		tier, found := table.TierFor(decimal.NewFromInt(650))
		require.True(t, found)
		assert.Equal(t, TierCodePrata, tier.Code())
	})
}
