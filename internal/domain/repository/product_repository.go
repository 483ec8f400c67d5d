package repository

import "github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"

// ProductRepository define el puerto de persistencia del catálogo.
// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para que la
// reescritura de variantes dentro de la transacción de venta sea serial.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateVariants reescribe el array completo de variantes del producto
	// (única vía legítima de mutar stock, desde el motor de ventas).
	UpdateVariants(productID string, variants []entity.Variant) error
	Search(query string, limit, offset int) ([]*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	ListByCategory(category string) ([]*entity.Product, error)
	Delete(id string) error
}
