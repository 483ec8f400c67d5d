package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
)

// CustomerResponse cliente con estadísticas de compra.
type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	PurchaseCount  int             `json:"purchase_count"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	LastPurchaseAt *time.Time      `json:"last_purchase_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToCustomerResponse convierte la entidad en respuesta.
func ToCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		PurchaseCount:  c.PurchaseCount,
		TotalSpent:     c.TotalSpent,
		LastPurchaseAt: c.LastPurchaseAt,
		CreatedAt:      c.CreatedAt,
	}
}
