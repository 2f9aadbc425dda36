package shipping

import (
	"github.com/editora/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
)

// QuoteItemRequest is one shipment line with its unit weight
type QuoteItemRequest struct {
	WeightKg decimal.Decimal `json:"weight_kg" binding:"required"`
	Quantity int             `json:"quantity" binding:"required,min=1"`
}

// QuoteRequest represents a request to size a shipment into boxes
type QuoteRequest struct {
	Items []QuoteItemRequest `json:"items" binding:"required,dive"`
}

// PackedBoxResponse is one line of a packing quote
type PackedBoxResponse struct {
	Type       string              `json:"type"`
	Dimensions shipping.Dimensions `json:"dimensions"`
	Quantity   int                 `json:"quantity"`
}

// QuoteResponse represents a packed shipment
type QuoteResponse struct {
	TotalWeightKg decimal.Decimal     `json:"total_weight_kg"`
	TotalVolumes  int                 `json:"total_volumes"`
	Boxes         []PackedBoxResponse `json:"boxes"`
}

// QuoteService maps shipment weights onto the carrier box table
type QuoteService struct{}

// NewQuoteService creates a new shipping QuoteService
func NewQuoteService() *QuoteService {
	return &QuoteService{}
}

// Quote computes the box decomposition for a shipment
func (s *QuoteService) Quote(req QuoteRequest) (*QuoteResponse, error) {
	weights := make([]decimal.Decimal, 0, len(req.Items))
	for _, item := range req.Items {
		for range item.Quantity {
			weights = append(weights, item.WeightKg)
		}
	}

	total, err := shipping.ShipmentWeight(weights)
	if err != nil {
		return nil, err
	}

	result := shipping.PackShipment(total)
	response := &QuoteResponse{
		TotalWeightKg: total,
		TotalVolumes:  result.TotalVolumes,
		Boxes:         make([]PackedBoxResponse, 0, len(result.Boxes)),
	}
	for _, box := range result.Boxes {
		response.Boxes = append(response.Boxes, PackedBoxResponse{
			Type:       string(box.Type),
			Dimensions: box.Dimensions,
			Quantity:   box.Quantity,
		})
	}
	return response, nil
}
