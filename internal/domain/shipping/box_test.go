package shipping

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackShipmentSingleBox(t *testing.T) {
	cases := []struct {
		name   string
		weight string
		want   BoxType
	}{
		{"lightest bracket", "0.3", BoxCx06},
		{"exactly at bracket edge", "1", BoxCx06},
		{"just above bracket edge", "1.01", BoxCx05},
		{"mid bracket", "4", BoxCx04},
		{"nine kilos", "9", BoxCx03},
		{"heavy single box", "25", BoxCx01},
		{"exactly thirty kilos", "30", BoxCx01},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := PackShipment(decimal.RequireFromString(tc.weight))

			require.Len(t, result.Boxes, 1)
			assert.Equal(t, tc.want, result.Boxes[0].Type)
			assert.Equal(t, 1, result.Boxes[0].Quantity)
			assert.Equal(t, 1, result.TotalVolumes)
		})
	}
}

func TestPackShipmentMultiBox(t *testing.T) {
	t.Run("thirty nine kilos is one full box plus the nine kilo bracket", func(t *testing.T) {
		result := PackShipment(decimal.NewFromInt(39))

		require.Len(t, result.Boxes, 2)
		assert.Equal(t, BoxCx01, result.Boxes[0].Type)
		assert.Equal(t, 1, result.Boxes[0].Quantity)
		assert.Equal(t, BoxCx03, result.Boxes[1].Type)
		assert.Equal(t, 1, result.Boxes[1].Quantity)
		assert.Equal(t, 2, result.TotalVolumes)
	})

	t.Run("exact multiple of the max bracket has no remainder box", func(t *testing.T) {
		result := PackShipment(decimal.NewFromInt(90))

		require.Len(t, result.Boxes, 1)
		assert.Equal(t, BoxCx01, result.Boxes[0].Type)
		assert.Equal(t, 3, result.Boxes[0].Quantity)
		assert.Equal(t, 3, result.TotalVolumes)
	})

	t.Run("remainder above the second bracket folds into another max box", func(t *testing.T) {
		result := PackShipment(decimal.NewFromInt(55))

		require.Len(t, result.Boxes, 1)
		assert.Equal(t, BoxCx01, result.Boxes[0].Type)
		assert.Equal(t, 2, result.Boxes[0].Quantity)
		assert.Equal(t, 2, result.TotalVolumes)
	})
}

func TestPackShipmentEmpty(t *testing.T) {
	t.Run("zero weight", func(t *testing.T) {
		result := PackShipment(decimal.Zero)

		assert.True(t, result.Empty())
		assert.Empty(t, result.Boxes)
	})

	t.Run("negative weight", func(t *testing.T) {
		result := PackShipment(decimal.NewFromInt(-5))

		assert.True(t, result.Empty())
	})
}

func TestShipmentWeight(t *testing.T) {
	t.Run("sums item weights", func(t *testing.T) {
		total, err := ShipmentWeight([]decimal.Decimal{
			decimal.NewFromFloat(0.4),
			decimal.NewFromFloat(1.2),
			decimal.NewFromFloat(0.4),
		})

		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromFloat(2.0)))
	})

	t.Run("rejects negative item weight", func(t *testing.T) {
		_, err := ShipmentWeight([]decimal.Decimal{decimal.NewFromInt(-1)})

		assert.Error(t, err)
	})

	t.Run("empty shipment weighs nothing", func(t *testing.T) {
		total, err := ShipmentWeight(nil)

		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestBoxTableIsAscending(t *testing.T) {
	table := BoxTable()
	for i := 1; i < len(table); i++ {
		assert.True(t, table[i].MaxWeightKg.GreaterThan(table[i-1].MaxWeightKg))
	}
	assert.True(t, MaxBoxWeightKg.Equal(decimal.NewFromInt(30)))
}
