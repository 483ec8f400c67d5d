// Package stock es el libro de variantes: búsqueda exacta de la variante
// (talle, color) de un producto, validación de disponibilidad y cálculo del
// stock post-transacción. Funciones puras sobre la entidad; la escritura
// real la hace el orquestador dentro de la transacción.
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
)

// Availability es el resultado de validar una variante contra stock.
type Availability struct {
	Available    bool
	CurrentStock int
	Price        decimal.Decimal
}

// Find busca la variante por (talle, color) con match exacto en ambos campos.
// El color vacío es un valor, no un comodín. Devuelve el índice dentro de
// Variants o -1 si no existe.
func Find(p *entity.Product, size, color string) (entity.Variant, int) {
	for i, v := range p.Variants {
		if v.Size == size && v.Color == color {
			return v, i
		}
	}
	return entity.Variant{}, -1
}

// Validate verifica que exista la variante y que el stock alcance para la
// cantidad pedida. Falla con ErrVariantNotFound o ErrInsufficientStock; el
// caller debe abortar el checkout, nunca clampear en silencio. Cuando la
// variante existe, Availability trae stock y precio aunque no alcance.
func Validate(p *entity.Product, size, color string, requestedQty int) (Availability, error) {
	v, idx := Find(p, size, color)
	if idx < 0 {
		return Availability{}, domain.ErrVariantNotFound
	}
	avail := Availability{
		Available:    v.Stock >= requestedQty,
		CurrentStock: v.Stock,
		Price:        v.SalePrice,
	}
	if !avail.Available {
		return avail, domain.ErrInsufficientStock
	}
	return avail, nil
}

// Apply computa las variantes resultantes tras sumar deltaQty al stock de la
// variante (negativo al vender, positivo al devolver). El resultado se
// floorea en cero: Validate ya debió impedir el underflow, el clamp es solo
// la red de seguridad. Los deltas positivos no tienen tope.
// Devuelve una copia del slice; no muta el producto.
func Apply(p *entity.Product, size, color string, deltaQty int) ([]entity.Variant, error) {
	_, idx := Find(p, size, color)
	if idx < 0 {
		return nil, domain.ErrVariantNotFound
	}
	updated := make([]entity.Variant, len(p.Variants))
	copy(updated, p.Variants)
	newStock := updated[idx].Stock + deltaQty
	if newStock < 0 {
		newStock = 0
	}
	updated[idx].Stock = newStock
	return updated, nil
}
