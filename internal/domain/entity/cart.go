package entity

import "github.com/shopspring/decimal"

// Tipos de línea de carrito. Una línea "quick" es un artículo no registrado
// (venta rápida): exenta de control de stock y de lookup de producto.
const (
	LineKindQuick      = "quick"
	LineKindRegistered = "registered"
)

// Tipos de descuento.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// CartLine es una línea del carrito en curso (estado efímero del cliente).
// Para Kind=registered, ProductID/Size/Color identifican la variante;
// para Kind=quick esos campos se ignoran. IsReturn marca una línea negativa
// dentro de un cambio: devuelve stock en lugar de consumirlo.
type CartLine struct {
	Kind      string          `json:"kind"`
	ProductID string          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	IsReturn  bool            `json:"is_return,omitempty"`
}

// IsQuick indica si la línea está exenta de control de stock.
func (l CartLine) IsQuick() bool {
	return l.Kind == LineKindQuick
}

// HasVariant indica si la línea trae talle y color completos. Una línea
// registrada sin variante no se valida contra stock (hueco tolerado del
// flujo original; el orquestador lo registra en el log).
func (l CartLine) HasVariant() bool {
	return l.Size != "" || l.Color != ""
}

// Discount es un descuento de carrito: porcentaje (0-100) o monto fijo.
type Discount struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// NoDiscount devuelve un descuento nulo.
func NoDiscount() Discount {
	return Discount{Type: DiscountFixed, Value: decimal.Zero}
}
