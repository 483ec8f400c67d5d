package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL (usable con
// pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create persiste el registro de devolución.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	query := `
		INSERT INTO returns (id, sale_id, sale_number, product_id, product_name, size, color,
			quantity, original_price, discount_applied, actual_price_paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.SaleID, ret.SaleNumber, ret.ProductID, ret.ProductName, ret.Size, ret.Color,
		ret.Quantity, ret.OriginalPrice, ret.DiscountApplied, ret.ActualPricePaid, ret.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

const returnColumns = `id, sale_id, sale_number, product_id, product_name, size, color,
	quantity, original_price, discount_applied, actual_price_paid, created_at`

func (r *ReturnRepo) scanReturn(row pgx.Row) (*entity.Return, error) {
	var ret entity.Return
	err := row.Scan(
		&ret.ID, &ret.SaleID, &ret.SaleNumber, &ret.ProductID, &ret.ProductName, &ret.Size, &ret.Color,
		&ret.Quantity, &ret.OriginalPrice, &ret.DiscountApplied, &ret.ActualPricePaid, &ret.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

// ListBySale lista las devoluciones registradas contra una venta.
func (r *ReturnRepo) ListBySale(saleID string) ([]*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE sale_id = $1 ORDER BY created_at`
	return r.listReturns(query, saleID)
}

// List lista devoluciones de más nueva a más vieja, paginado.
func (r *ReturnRepo) List(limit, offset int) ([]*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.listReturns(query, normalizeLimit(limit), offset)
}

func (r *ReturnRepo) listReturns(query string, args ...any) ([]*entity.Return, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var out []*entity.Return
	for rows.Next() {
		ret, err := r.scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		out = append(out, ret)
	}
	return out, rows.Err()
}
