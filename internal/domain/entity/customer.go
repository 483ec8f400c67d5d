package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer agrupa los datos de CRM de un cliente. Las estadísticas de compra
// (cantidad, gasto acumulado, última compra) se actualizan como efecto
// best-effort después de confirmar cada venta; nunca bloquean la venta.
type Customer struct {
	ID             string
	Name           string
	Phone          string
	PurchaseCount  int
	TotalSpent     decimal.Decimal
	LastPurchaseAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
