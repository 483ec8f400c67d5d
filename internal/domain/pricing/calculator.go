// Package pricing contiene el cálculo puro de totales de carrito: subtotal,
// descuento, redondeo a múltiplos de 500, vuelto y neto por comisión.
// Sin I/O ni efectos; todo sobre shopspring/decimal.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
)

var fiveHundred = decimal.NewFromInt(500)
var hundred = decimal.NewFromInt(100)

// Totals es el resultado del cálculo de carrito.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Calculate computa subtotal, monto de descuento y total final del carrito.
// Las líneas de devolución restan. El descuento porcentual se interpreta
// sobre 100; el fijo se clampa para no superar el subtotal. El total se
// redondea al múltiplo de 500 más cercano y nunca baja de cero.
func Calculate(items []entity.CartLine, discount entity.Discount) Totals {
	subtotal := decimal.Zero
	for _, line := range items {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		if line.IsReturn {
			subtotal = subtotal.Sub(lineTotal)
		} else {
			subtotal = subtotal.Add(lineTotal)
		}
	}

	amount := decimal.Zero
	switch discount.Type {
	case entity.DiscountPercentage:
		amount = subtotal.Mul(discount.Value).Div(hundred)
	case entity.DiscountFixed:
		amount = discount.Value
	}
	// Clamp: el descuento nunca supera el subtotal ni es negativo.
	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	if amount.LessThan(decimal.Zero) {
		amount = decimal.Zero
	}

	total := RoundToNearest500(subtotal.Sub(amount))
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}
	return Totals{Subtotal: subtotal, DiscountAmount: amount, Total: total}
}

// RoundToNearest500 redondea al múltiplo de 500 más cercano:
// round(monto/500)*500. Política de caja del local (denominaciones de
// efectivo); idempotente.
func RoundToNearest500(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(fiveHundred).Round(0).Mul(fiveHundred)
}

// Change calcula el vuelto: cero si el efectivo recibido no alcanza el total.
func Change(cashReceived, total decimal.Decimal) decimal.Decimal {
	if cashReceived.LessThan(total) {
		return decimal.Zero
	}
	return cashReceived.Sub(total)
}

// NetAfterCommission descuenta del total la comisión porcentual de los medios
// de pago no efectivo: net = total - total*comision/100. Comisión cero o
// negativa deja el total intacto.
func NetAfterCommission(total, commissionPercent decimal.Decimal) decimal.Decimal {
	if commissionPercent.LessThanOrEqual(decimal.Zero) {
		return total
	}
	return total.Sub(total.Mul(commissionPercent).Div(hundred))
}
