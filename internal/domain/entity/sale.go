package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash     = "efectivo"
	PaymentDebit    = "debito"
	PaymentCredit   = "credito"
	PaymentTransfer = "transferencia"
	PaymentQR       = "qr"
)

// SaleItem es la foto de una línea al momento de cerrar la venta. Se
// desnormaliza nombre, talle, color y precio para que el historial siga
// siendo legible aunque el producto se edite o se borre después.
type SaleItem struct {
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

// Sale es el registro inmutable de una venta cerrada. Una vez confirmada,
// Items no cambia nunca: las correcciones se expresan como Return aparte.
// SaleNumber tiene formato YYYYMMDD-NNN (secuencial por día calendario);
// si la numeración falla se degrada a un id por timestamp.
type Sale struct {
	ID            string
	SaleNumber    string
	Items         []SaleItem
	Subtotal      decimal.Decimal
	DiscountType  string
	DiscountValue decimal.Decimal
	DiscountAmt   decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	Commission    decimal.Decimal // porcentaje; cero para efectivo
	CustomerName  string
	CreatedAt     time.Time
}
