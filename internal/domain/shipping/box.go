package shipping

import (
	"github.com/editora/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BoxType identifies one of the carrier's standard box sizes
type BoxType string

const (
	BoxCx01 BoxType = "Cx 01"
	BoxCx02 BoxType = "Cx 02"
	BoxCx03 BoxType = "Cx 03"
	BoxCx04 BoxType = "Cx 04"
	BoxCx05 BoxType = "Cx 05"
	BoxCx06 BoxType = "Cx 06"
)

// Dimensions are external box measurements in centimeters
type Dimensions struct {
	LengthCm int `json:"length_cm"`
	WidthCm  int `json:"width_cm"`
	HeightCm int `json:"height_cm"`
}

// Box is one entry of the carrier's box table
type Box struct {
	Type        BoxType         `json:"type"`
	MaxWeightKg decimal.Decimal `json:"max_weight_kg"`
	Dimensions  Dimensions      `json:"dimensions"`
}

// boxTable is the fixed ascending weight-bracket table. The last entry
// is the largest box a single shipment volume may use; heavier
// shipments are decomposed into multiple volumes.
var boxTable = []Box{
	{Type: BoxCx06, MaxWeightKg: decimal.NewFromInt(1), Dimensions: Dimensions{18, 13, 9}},
	{Type: BoxCx05, MaxWeightKg: decimal.NewFromInt(3), Dimensions: Dimensions{27, 18, 9}},
	{Type: BoxCx04, MaxWeightKg: decimal.NewFromInt(5), Dimensions: Dimensions{36, 27, 18}},
	{Type: BoxCx03, MaxWeightKg: decimal.NewFromInt(10), Dimensions: Dimensions{36, 28, 23}},
	{Type: BoxCx02, MaxWeightKg: decimal.NewFromInt(20), Dimensions: Dimensions{50, 40, 30}},
	{Type: BoxCx01, MaxWeightKg: decimal.NewFromInt(30), Dimensions: Dimensions{60, 50, 40}},
}

// MaxBoxWeightKg is the capacity of the largest box in the table
var MaxBoxWeightKg = boxTable[len(boxTable)-1].MaxWeightKg

// BoxTable returns a copy of the carrier box table, smallest first
func BoxTable() []Box {
	out := make([]Box, len(boxTable))
	copy(out, boxTable)
	return out
}

// boxFor returns the smallest box whose bracket covers the weight.
// The caller guarantees 0 < weight <= MaxBoxWeightKg.
func boxFor(weightKg decimal.Decimal) Box {
	for _, box := range boxTable {
		if weightKg.LessThanOrEqual(box.MaxWeightKg) {
			return box
		}
	}
	return boxTable[len(boxTable)-1]
}

// PackedBox is one line of a packing result
type PackedBox struct {
	Type       BoxType    `json:"type"`
	Dimensions Dimensions `json:"dimensions"`
	Quantity   int        `json:"quantity"`
}

// PackingResult describes how a shipment weight maps onto boxes
type PackingResult struct {
	Boxes        []PackedBox `json:"boxes"`
	TotalVolumes int         `json:"total_volumes"`
}

// Empty reports whether the result contains no volumes
func (r PackingResult) Empty() bool {
	return r.TotalVolumes == 0
}

// PackShipment maps a total shipment weight to box types and quantities.
// Weights up to the largest bracket fit a single box. Heavier shipments
// become floor(weight/30) full-size boxes plus one box for the
// remainder; a remainder above the top bracket becomes another
// full-size box. Zero or negative weight yields an empty result.
func PackShipment(weightKg decimal.Decimal) PackingResult {
	if weightKg.LessThanOrEqual(decimal.Zero) {
		return PackingResult{Boxes: []PackedBox{}}
	}

	if weightKg.LessThanOrEqual(MaxBoxWeightKg) {
		box := boxFor(weightKg)
		return PackingResult{
			Boxes:        []PackedBox{{Type: box.Type, Dimensions: box.Dimensions, Quantity: 1}},
			TotalVolumes: 1,
		}
	}

	fullBoxes := int(weightKg.Div(MaxBoxWeightKg).IntPart())
	remainder := weightKg.Sub(MaxBoxWeightKg.Mul(decimal.NewFromInt(int64(fullBoxes))))

	maxBox := boxTable[len(boxTable)-1]
	result := PackingResult{
		Boxes: []PackedBox{{Type: maxBox.Type, Dimensions: maxBox.Dimensions, Quantity: fullBoxes}},
	}

	if remainder.IsPositive() {
		box := boxFor(remainder)
		if box.Type == maxBox.Type {
			result.Boxes[0].Quantity++
		} else {
			result.Boxes = append(result.Boxes, PackedBox{Type: box.Type, Dimensions: box.Dimensions, Quantity: 1})
		}
	}

	for _, packed := range result.Boxes {
		result.TotalVolumes += packed.Quantity
	}
	return result
}

// ShipmentWeight sums item weights into a total shipment weight
func ShipmentWeight(itemWeightsKg []decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, w := range itemWeightsKg {
		if w.IsNegative() {
			return decimal.Zero, shared.NewDomainError("INVALID_WEIGHT", "Item weight cannot be negative")
		}
		total = total.Add(w)
	}
	return total, nil
}
