package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant es una combinación (talle, color) de un producto, con su propio
// stock y precio de venta. Se persiste como JSONB dentro de la fila del
// producto y se reescribe completa en cada mutación de stock.
// El color vacío es un valor válido, no un comodín.
type Variant struct {
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Stock     int             `json:"stock"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// Product representa una prenda del catálogo. El ID funciona también como
// código de barras y es inmutable una vez creado. El stock vive por variante;
// las únicas mutaciones legítimas pasan por el motor de ventas
// (decremento al vender, incremento al devolver).
type Product struct {
	ID          string
	Name        string
	Category    string
	Provider    string
	Description string
	CostPrice   decimal.Decimal
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TotalStock suma el stock de todas las variantes.
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}
