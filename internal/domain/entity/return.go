package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Return registra la devolución de una línea vendida. Conserva el precio
// original y el precio efectivamente pagado (con el descuento aplicado)
// para auditoría. Referencia la variante a la que se repone el stock;
// una variante con stock cero sigue siendo destino válido.
type Return struct {
	ID              string
	SaleID          string
	SaleNumber      string
	ProductID       string
	ProductName     string
	Size            string
	Color           string
	Quantity        int
	OriginalPrice   decimal.Decimal
	DiscountApplied decimal.Decimal // porcentaje 0-100
	ActualPricePaid decimal.Decimal // OriginalPrice * (1 - DiscountApplied/100)
	CreatedAt       time.Time
}
