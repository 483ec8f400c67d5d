package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
)

// VariantDTO variante (talle, color) con stock y precio.
type VariantDTO struct {
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Stock     int             `json:"stock"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// CreateProductRequest alta de producto. El ID es el código de barras.
type CreateProductRequest struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Provider    string          `json:"provider"`
	Description string          `json:"description"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Variants    []VariantDTO    `json:"variants"`
}

// UpdateProductRequest edición de producto (sin stock: eso va por ventas).
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Provider    string          `json:"provider"`
	Description string          `json:"description"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Variants    []VariantDTO    `json:"variants"`
}

// ProductResponse producto completo.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Provider    string          `json:"provider"`
	Description string          `json:"description"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Variants    []VariantDTO    `json:"variants"`
	TotalStock  int             `json:"total_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductEntity convierte el request de alta en entidad.
func (r CreateProductRequest) ToProductEntity() *entity.Product {
	return &entity.Product{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Provider:    r.Provider,
		Description: r.Description,
		CostPrice:   r.CostPrice,
		Variants:    toVariantEntities(r.Variants),
	}
}

// ApplyTo vuelca los campos editables del request sobre la entidad. Las
// variantes redefinen el surtido pero el stock de una variante que ya
// existía se conserva: las cantidades solo mutan vía ventas y devoluciones.
// Una variante nueva entra con el stock declarado (carga inicial).
func (r UpdateProductRequest) ApplyTo(p *entity.Product) {
	p.Name = r.Name
	p.Category = r.Category
	p.Provider = r.Provider
	p.Description = r.Description
	p.CostPrice = r.CostPrice
	if r.Variants == nil {
		return
	}
	existing := make(map[string]int, len(p.Variants))
	for _, v := range p.Variants {
		existing[v.Size+"|"+v.Color] = v.Stock
	}
	variants := toVariantEntities(r.Variants)
	for i, v := range variants {
		if stock, ok := existing[v.Size+"|"+v.Color]; ok {
			variants[i].Stock = stock
		}
	}
	p.Variants = variants
}

// ToProductResponse convierte la entidad en respuesta.
func ToProductResponse(p *entity.Product) ProductResponse {
	variants := make([]VariantDTO, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantDTO{Size: v.Size, Color: v.Color, Stock: v.Stock, SalePrice: v.SalePrice})
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Provider:    p.Provider,
		Description: p.Description,
		CostPrice:   p.CostPrice,
		Variants:    variants,
		TotalStock:  p.TotalStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toVariantEntities(in []VariantDTO) []entity.Variant {
	out := make([]entity.Variant, 0, len(in))
	for _, v := range in {
		out = append(out, entity.Variant{Size: v.Size, Color: v.Color, Stock: v.Stock, SalePrice: v.SalePrice})
	}
	return out
}
