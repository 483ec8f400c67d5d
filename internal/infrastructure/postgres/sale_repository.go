package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool
// o tx). Los ítems se guardan como JSONB: son fotos inmutables, no filas
// relacionales.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta. No existe Update: las ventas son inmutables.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("serializar ítems: %w", err)
	}
	query := `
		INSERT INTO sales (id, sale_number, items, subtotal, discount_type, discount_value,
			discount_amount, total, payment_method, commission, customer_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleNumber, items, sale.Subtotal, sale.DiscountType, sale.DiscountValue,
		sale.DiscountAmt, sale.Total, sale.PaymentMethod, sale.Commission, sale.CustomerName, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

const saleColumns = `id, sale_number, items, subtotal, discount_type, discount_value,
	discount_amount, total, payment_method, commission, customer_name, created_at`

func (r *SaleRepo) scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var items []byte
	err := row.Scan(
		&s.ID, &s.SaleNumber, &items, &s.Subtotal, &s.DiscountType, &s.DiscountValue,
		&s.DiscountAmt, &s.Total, &s.PaymentMethod, &s.Commission, &s.CustomerName, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, fmt.Errorf("deserializar ítems: %w", err)
		}
	}
	return &s, nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := r.scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetBySaleNumber obtiene una venta por número legible.
func (r *SaleRepo) GetBySaleNumber(number string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_number = $1`
	s, err := r.scanSale(r.q.QueryRow(context.Background(), query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by number: %w", err)
	}
	return s, nil
}

// List lista ventas de más nueva a más vieja, paginado.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.listSales(query, normalizeLimit(limit), offset)
}

// ListByDay lista las ventas de un día calendario.
func (r *SaleRepo) ListByDay(day time.Time) ([]*entity.Sale, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	query := `SELECT ` + saleColumns + ` FROM sales WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at`
	return r.listSales(query, start, end)
}

func (r *SaleRepo) listSales(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var out []*entity.Sale
	for rows.Next() {
		s, err := r.scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

var _ repository.SaleCounterRepository = (*SaleCounterRepo)(nil)

// SaleCounterRepo es la secuencia transaccional por día que respalda la
// numeración YYYYMMDD-NNN. El upsert con RETURNING incrementa y lee en una
// sola operación atómica: dos commits concurrentes no pueden quedarse con el
// mismo número.
type SaleCounterRepo struct {
	q Querier
}

// NewSaleCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleCounterRepository(q Querier) *SaleCounterRepo {
	return &SaleCounterRepo{q: q}
}

// Next incrementa y devuelve el último número del día.
func (r *SaleCounterRepo) Next(day string) (int, error) {
	query := `
		INSERT INTO sale_counters (day, last)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET last = sale_counters.last + 1
		RETURNING last`
	var n int
	if err := r.q.QueryRow(context.Background(), query, day).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sale number: %w", err)
	}
	return n, nil
}
