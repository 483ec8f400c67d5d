package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la venta y las reescrituras de
// stock se confirmen o descarten como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		counterRepo repository.SaleCounterRepository,
		returnRepo repository.ReturnRepository,
	) error) error
}

// StatsRecorder actualiza las estadísticas de compra del cliente después de
// que la venta quedó confirmada. Es un efecto best-effort: un error acá se
// loguea y se traga, nunca revierte ni falla la venta ya escrita.
type StatsRecorder interface {
	RecordPurchase(ctx context.Context, customerName string, total decimal.Decimal, at time.Time) error
}
