// Package catalog maneja el catálogo de prendas: alta, edición, búsqueda con
// filtro de talle y el reporte de stock por talle canónico.
package catalog

import (
	"time"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/sizing"
)

// ProductUseCase casos de uso del catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create da de alta un producto. El ID (código de barras) es obligatorio e
// inmutable; un ID repetido es ErrDuplicate.
func (uc *ProductUseCase) Create(p *entity.Product) error {
	if p.ID == "" || p.Name == "" {
		return domain.ErrInvalidInput
	}
	for _, v := range p.Variants {
		if v.Stock < 0 {
			return domain.ErrInvalidInput
		}
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return uc.repo.Create(p)
}

// GetByID devuelve el producto o ErrNotFound.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Update edita los campos del producto. No toca stock: eso es exclusivo del
// motor de ventas.
func (uc *ProductUseCase) Update(p *entity.Product) error {
	if p.ID == "" {
		return domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByID(p.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	return uc.repo.Update(p)
}

// Delete borra el producto. El historial de ventas no se limpia en cascada:
// las ventas guardan fotos desnormalizadas.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// List lista el catálogo paginado.
func (uc *ProductUseCase) List(limit, offset int) ([]*entity.Product, error) {
	return uc.repo.List(limit, offset)
}

// Search busca por texto y opcionalmente filtra por talle. El filtro usa el
// atajo numérico↔letra: buscar talle "2" también trae variantes cargadas
// como "M".
func (uc *ProductUseCase) Search(query, sizeFilter string, limit, offset int) ([]*entity.Product, error) {
	results, err := uc.repo.Search(query, limit, offset)
	if err != nil {
		return nil, err
	}
	if sizeFilter == "" {
		return results, nil
	}
	filtered := make([]*entity.Product, 0, len(results))
	for _, p := range results {
		for _, v := range p.Variants {
			if sizing.SameGroup(v.Size, sizeFilter) {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, nil
}

// SizeStock es una fila del reporte de stock por talle.
type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// StockBySize agrupa el stock de las variantes de una categoría bajo el
// token canónico de talle, para ver faltantes pese a etiquetas inconsistentes.
// Categoría vacía agrupa el catálogo completo.
func (uc *ProductUseCase) StockBySize(category string) ([]SizeStock, error) {
	var products []*entity.Product
	var err error
	if category == "" {
		products, err = uc.repo.List(0, 0)
	} else {
		products, err = uc.repo.ListByCategory(category)
	}
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	order := make([]string, 0)
	for _, p := range products {
		for _, v := range p.Variants {
			token := sizing.Normalize(v.Size)
			if _, seen := totals[token]; !seen {
				order = append(order, token)
			}
			totals[token] += v.Stock
		}
	}

	out := make([]SizeStock, 0, len(order))
	for _, token := range order {
		out = append(out, SizeStock{Size: token, Stock: totals[token]})
	}
	return out, nil
}
