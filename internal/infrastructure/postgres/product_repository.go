package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). Las variantes viven en una columna JSONB que se
// reescribe entera en cada mutación de stock.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con sus variantes.
func (r *ProductRepo) Create(product *entity.Product) error {
	variants, err := json.Marshal(product.Variants)
	if err != nil {
		return fmt.Errorf("serializar variantes: %w", err)
	}
	query := `
		INSERT INTO products (id, name, category, provider, description, cost_price, variants, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.Provider, product.Description,
		product.CostPrice, variants, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

const productColumns = `id, name, category, provider, description, cost_price, variants, created_at, updated_at`

func (r *ProductRepo) scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var variants []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Provider, &p.Description,
		&p.CostPrice, &variants, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(variants) > 0 {
		if err := json.Unmarshal(variants, &p.Variants); err != nil {
			return nil, fmt.Errorf("deserializar variantes: %w", err)
		}
	}
	return &p, nil
}

// GetByID obtiene un producto por ID (código de barras).
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := r.scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE) para
// que la reescritura de variantes dentro de la transacción de venta sea serial.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := r.scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables del producto, variantes incluidas
// (el alta/baja de variantes es edición de catálogo; el stock va por ventas).
func (r *ProductRepo) Update(product *entity.Product) error {
	variants, err := json.Marshal(product.Variants)
	if err != nil {
		return fmt.Errorf("serializar variantes: %w", err)
	}
	query := `
		UPDATE products SET name = $2, category = $3, provider = $4, description = $5,
			cost_price = $6, variants = $7, updated_at = $8
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.Provider, product.Description,
		product.CostPrice, variants, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateVariants reescribe solo el array de variantes (usada por el motor de
// ventas dentro de la transacción, con la fila ya bloqueada).
func (r *ProductRepo) UpdateVariants(productID string, variants []entity.Variant) error {
	payload, err := json.Marshal(variants)
	if err != nil {
		return fmt.Errorf("serializar variantes: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`UPDATE products SET variants = $2, updated_at = now() WHERE id = $1`,
		productID, payload,
	)
	if err != nil {
		return fmt.Errorf("update variants: %w", err)
	}
	return nil
}

// Search busca por nombre (ILIKE) o ID exacto, paginado.
func (r *ProductRepo) Search(query string, limit, offset int) ([]*entity.Product, error) {
	sql := `
		SELECT ` + productColumns + ` FROM products
		WHERE name ILIKE '%' || $1 || '%' OR id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(sql, query, normalizeLimit(limit), offset)
}

// List lista el catálogo paginado; limit <= 0 trae todo.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(sql, normalizeLimit(limit), offset)
}

// ListByCategory lista todos los productos de una categoría.
func (r *ProductRepo) ListByCategory(category string) ([]*entity.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY name`
	return r.list(sql, category)
}

func (r *ProductRepo) list(sql string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete elimina un producto por ID. El historial de ventas queda intacto
// (fotos desnormalizadas).
func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// normalizeLimit traduce limit <= 0 a "sin límite" (NULL en LIMIT).
func normalizeLimit(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
