package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
)

// CartLineDTO línea del carrito. kind: "registered" | "quick".
type CartLineDTO struct {
	Kind      string          `json:"kind"`
	ProductID string          `json:"product_id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	IsReturn  bool            `json:"is_return,omitempty"`
}

// DiscountDTO descuento de carrito: "percentage" (0-100) o "fixed".
type DiscountDTO struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// CommitSaleRequest confirma la venta del carrito.
type CommitSaleRequest struct {
	Items         []CartLineDTO   `json:"items"`
	Discount      DiscountDTO     `json:"discount"`
	PaymentMethod string          `json:"payment_method"`
	Commission    decimal.Decimal `json:"commission"`
	CustomerName  string          `json:"customer_name"`
	CashReceived  decimal.Decimal `json:"cash_received"`
}

// SaleItemDTO foto de línea vendida.
type SaleItemDTO struct {
	ProductID string          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	IsQuick   bool            `json:"is_quick,omitempty"`
	IsReturn  bool            `json:"is_return,omitempty"`
}

// SaleResponse venta confirmada, con vuelto y neto por comisión calculados.
type SaleResponse struct {
	ID             string          `json:"id"`
	SaleNumber     string          `json:"sale_number"`
	Items          []SaleItemDTO   `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	PaymentMethod  string          `json:"payment_method"`
	Commission     decimal.Decimal `json:"commission"`
	NetTotal       decimal.Decimal `json:"net_total"`
	Change         decimal.Decimal `json:"change"`
	CustomerName   string          `json:"customer_name,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToCartLines convierte las líneas del request a entidades.
func (r CommitSaleRequest) ToCartLines() []entity.CartLine {
	out := make([]entity.CartLine, 0, len(r.Items))
	for _, l := range r.Items {
		out = append(out, entity.CartLine{
			Kind:      l.Kind,
			ProductID: l.ProductID,
			Name:      l.Name,
			Size:      l.Size,
			Color:     l.Color,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			IsReturn:  l.IsReturn,
		})
	}
	return out
}

// ToDiscountEntity convierte el descuento del request.
func (r CommitSaleRequest) ToDiscountEntity() entity.Discount {
	if r.Discount.Type == "" {
		return entity.NoDiscount()
	}
	return entity.Discount{Type: r.Discount.Type, Value: r.Discount.Value}
}

// ToSaleResponse arma la respuesta; change y netTotal los calcula el handler
// con el calculador de precios.
func ToSaleResponse(s *entity.Sale, change, netTotal decimal.Decimal) SaleResponse {
	items := make([]SaleItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			Color:     it.Color,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
			IsQuick:   it.IsQuick,
			IsReturn:  it.IsReturn,
		})
	}
	return SaleResponse{
		ID:             s.ID,
		SaleNumber:     s.SaleNumber,
		Items:          items,
		Subtotal:       s.Subtotal,
		DiscountAmount: s.DiscountAmt,
		Total:          s.Total,
		PaymentMethod:  s.PaymentMethod,
		Commission:     s.Commission,
		NetTotal:       netTotal,
		Change:         change,
		CustomerName:   s.CustomerName,
		CreatedAt:      s.CreatedAt,
	}
}
