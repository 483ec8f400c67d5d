package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
)

// ReturnItemRequest selecciona una línea de la venta (por índice) a devolver.
type ReturnItemRequest struct {
	ItemIndex       int             `json:"item_index"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// ProcessReturnRequest devolución sobre una venta pasada.
type ProcessReturnRequest struct {
	SaleID string              `json:"sale_id"`
	Items  []ReturnItemRequest `json:"items"`
}

// ExchangeLineRequest arma la línea negativa de un cambio.
type ExchangeLineRequest struct {
	ProductID       string          `json:"product_id"`
	Size            string          `json:"size"`
	Color           string          `json:"color"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// ReturnResponse registro de devolución.
type ReturnResponse struct {
	ID              string          `json:"id"`
	SaleID          string          `json:"sale_id"`
	SaleNumber      string          `json:"sale_number"`
	ProductID       string          `json:"product_id,omitempty"`
	ProductName     string          `json:"product_name"`
	Size            string          `json:"size,omitempty"`
	Color           string          `json:"color,omitempty"`
	Quantity        int             `json:"quantity"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	DiscountApplied decimal.Decimal `json:"discount_applied"`
	ActualPricePaid decimal.Decimal `json:"actual_price_paid"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ProcessReturnResponse devoluciones creadas + total devuelto.
type ProcessReturnResponse struct {
	Returns []ReturnResponse `json:"returns"`
	Total   decimal.Decimal  `json:"total"`
}

// ToReturnResponse convierte la entidad en respuesta.
func ToReturnResponse(r *entity.Return) ReturnResponse {
	return ReturnResponse{
		ID:              r.ID,
		SaleID:          r.SaleID,
		SaleNumber:      r.SaleNumber,
		ProductID:       r.ProductID,
		ProductName:     r.ProductName,
		Size:            r.Size,
		Color:           r.Color,
		Quantity:        r.Quantity,
		OriginalPrice:   r.OriginalPrice,
		DiscountApplied: r.DiscountApplied,
		ActualPricePaid: r.ActualPricePaid,
		CreatedAt:       r.CreatedAt,
	}
}
