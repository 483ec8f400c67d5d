package dto

import (
	"time"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
)

// ParkSaleRequest estaciona el carrito en curso en un slot.
type ParkSaleRequest struct {
	Items         []CartLineDTO `json:"items"`
	Discount      DiscountDTO   `json:"discount"`
	PaymentMethod string        `json:"payment_method"`
	CustomerName  string        `json:"customer_name"`
}

// PendingSaleResponse carrito estacionado.
type PendingSaleResponse struct {
	SlotID        string        `json:"slot_id"`
	Items         []CartLineDTO `json:"items"`
	Discount      DiscountDTO   `json:"discount"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	CustomerName  string        `json:"customer_name,omitempty"`
	ParkedAt      time.Time     `json:"parked_at"`
}

// ToPendingSaleResponse convierte la entidad en respuesta.
func ToPendingSaleResponse(p *entity.PendingSale) PendingSaleResponse {
	items := make([]CartLineDTO, 0, len(p.Items))
	for _, l := range p.Items {
		items = append(items, CartLineDTO{
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
	return PendingSaleResponse{
		SlotID:        p.SlotID,
		Items:         items,
		Discount:      DiscountDTO{Type: p.Discount.Type, Value: p.Discount.Value},
		PaymentMethod: p.PaymentMethod,
		CustomerName:  p.CustomerName,
		ParkedAt:      p.ParkedAt,
	}
}
