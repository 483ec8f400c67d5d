package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/pricing"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/stock"
	"github.com/RoseMODA/rosema-pos-sub001/pkg/logger"
)

// fallbackProductName cuando ni el producto ni la línea traen nombre.
const fallbackProductName = "Producto"

// CommitSaleInput es el carrito listo para confirmar.
type CommitSaleInput struct {
	Items         []entity.CartLine
	Discount      entity.Discount
	PaymentMethod string
	Commission    decimal.Decimal
	CustomerName  string
}

// CommitSaleUseCase convierte un carrito en una venta confirmada: valida el
// stock de todas las líneas, asigna el número secuencial del día y escribe la
// venta junto con todas las mutaciones de stock en una sola transacción.
// Estados por transacción: Validando → Numerando → Escribiendo → Confirmada,
// o Validando → Abortada ante cualquier falla de stock; no existe estado de
// commit parcial visible para el caller.
type CommitSaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	stats       StatsRecorder
	log         *logger.Logger
	now         func() time.Time
}

// NewCommitSaleUseCase construye el caso de uso. stats puede ser nil si no
// hay CRM configurado.
func NewCommitSaleUseCase(txRunner TxRunner, productRepo repository.ProductRepository, stats StatsRecorder, log *logger.Logger) *CommitSaleUseCase {
	return &CommitSaleUseCase{txRunner: txRunner, productRepo: productRepo, stats: stats, log: log, now: time.Now}
}

// WithClock reemplaza la fuente de tiempo (tests de numeración por día).
func (uc *CommitSaleUseCase) WithClock(now func() time.Time) *CommitSaleUseCase {
	uc.now = now
	return uc
}

// Commit valida y confirma la venta. Ante una falla de stock aborta sin
// escribir nada; ante una falla de persistencia la transacción completa se
// descarta. El update de estadísticas del cliente corre después del commit y
// jamás afecta el resultado.
func (uc *CommitSaleUseCase) Commit(ctx context.Context, in CommitSaleInput) (*entity.Sale, error) {
	if len(in.Items) == 0 || in.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.Kind != entity.LineKindQuick && line.Kind != entity.LineKindRegistered {
			return nil, domain.ErrInvalidInput
		}
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if line.Kind == entity.LineKindRegistered && line.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validando: chequeo de stock fuera de la tx para abortar temprano con
	// el error preciso. Se repite bajo lock dentro de la tx.
	products, err := uc.loadProducts(in.Items)
	if err != nil {
		return nil, err
	}
	if err := uc.validateStock(in.Items, products); err != nil {
		return nil, err
	}

	totals := pricing.Calculate(in.Items, in.Discount)
	now := uc.now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		Items:         uc.snapshotItems(in.Items, products),
		Subtotal:      totals.Subtotal,
		DiscountType:  in.Discount.Type,
		DiscountValue: in.Discount.Value,
		DiscountAmt:   totals.DiscountAmount,
		Total:         totals.Total,
		PaymentMethod: in.PaymentMethod,
		Commission:    in.Commission,
		CustomerName:  in.CustomerName,
		CreatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		counterRepo repository.SaleCounterRepository,
		_ repository.ReturnRepository,
	) error {
		// Escribiendo: relee cada producto bajo FOR UPDATE, revalida y aplica
		// los deltas de stock; la primera falla descarta todo.
		if err := uc.applyStockDeltas(in.Items, productRepo); err != nil {
			return err
		}

		// Numerando: secuencia transaccional por día. Si falla, degrada a un
		// id por timestamp (unicidad best-effort) en lugar de abortar.
		sale.SaleNumber = uc.nextSaleNumber(counterRepo, now)

		if err := saleRepo.Create(sale); err != nil {
			return fmt.Errorf("persistir venta: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recordCustomerStats(ctx, sale)
	return sale, nil
}

// loadProducts carga una vez cada producto referenciado por líneas registradas.
func (uc *CommitSaleUseCase) loadProducts(items []entity.CartLine) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product)
	for _, line := range items {
		if line.IsQuick() || line.ProductID == "" {
			continue
		}
		if _, ok := products[line.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("leer producto %s: %w", line.ProductID, err)
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		products[line.ProductID] = p
	}
	return products, nil
}

// validateStock valida contra el libro de variantes toda línea registrada que
// no sea devolución. Las devoluciones dentro de la misma venta reponen stock,
// no lo consumen, así que quedan exentas; las líneas sin talle ni color
// tampoco se validan (hueco heredado del flujo original, se deja rastro en
// el log para poder auditarlo).
func (uc *CommitSaleUseCase) validateStock(items []entity.CartLine, products map[string]*entity.Product) error {
	for _, line := range items {
		if line.IsQuick() || line.IsReturn {
			continue
		}
		if !line.HasVariant() {
			uc.log.Warn().
				Str("product_id", line.ProductID).
				Msg("línea registrada sin talle ni color: se omite la validación de stock")
			continue
		}
		p := products[line.ProductID]
		if p == nil {
			return domain.ErrNotFound
		}
		if _, err := stock.Validate(p, line.Size, line.Color, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// applyStockDeltas agrupa las líneas por producto, bloquea cada fila en orden
// estable (evita deadlocks entre dos cajas) y reescribe el array de variantes
// con los deltas aplicados: negativo al vender, positivo para devoluciones.
func (uc *CommitSaleUseCase) applyStockDeltas(items []entity.CartLine, productRepo repository.ProductRepository) error {
	byProduct := make(map[string][]entity.CartLine)
	for _, line := range items {
		if line.IsQuick() || line.ProductID == "" || !line.HasVariant() {
			continue
		}
		byProduct[line.ProductID] = append(byProduct[line.ProductID], line)
	}

	ids := make([]string, 0, len(byProduct))
	for id := range byProduct {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p, err := productRepo.GetForUpdate(id)
		if err != nil {
			return fmt.Errorf("bloquear producto %s: %w", id, err)
		}
		if p == nil {
			return domain.ErrNotFound
		}
		for _, line := range byProduct[id] {
			delta := -line.Quantity
			if line.IsReturn {
				delta = line.Quantity
			} else {
				// Revalidación bajo lock: el chequeo previo pudo quedar viejo.
				if _, err := stock.Validate(p, line.Size, line.Color, line.Quantity); err != nil {
					return err
				}
			}
			updated, err := stock.Apply(p, line.Size, line.Color, delta)
			if err != nil {
				return err
			}
			p.Variants = updated
		}
		if err := productRepo.UpdateVariants(id, p.Variants); err != nil {
			return fmt.Errorf("reescribir variantes de %s: %w", id, err)
		}
	}
	return nil
}

// nextSaleNumber arma YYYYMMDD-NNN desde la secuencia del día; ante cualquier
// falla degrada a un timestamp en milisegundos y lo deja logueado como warning.
func (uc *CommitSaleUseCase) nextSaleNumber(counterRepo repository.SaleCounterRepository, now time.Time) string {
	day := now.Format("20060102")
	n, err := counterRepo.Next(day)
	if err != nil {
		uc.log.Warn().Err(err).Msg("numeración de venta falló: se usa id por timestamp")
		return fmt.Sprintf("%d", now.UnixMilli())
	}
	return fmt.Sprintf("%s-%03d", day, n)
}

// snapshotItems desnormaliza las líneas al momento del cierre. El nombre se
// resuelve producto → línea → fallback fijo.
func (uc *CommitSaleUseCase) snapshotItems(items []entity.CartLine, products map[string]*entity.Product) []entity.SaleItem {
	out := make([]entity.SaleItem, 0, len(items))
	for _, line := range items {
		name := line.Name
		if p, ok := products[line.ProductID]; ok && p.Name != "" {
			name = p.Name
		}
		if name == "" {
			name = fallbackProductName
		}
		out = append(out, entity.SaleItem{
			ProductID: line.ProductID,
			Name:      name,
			Size:      line.Size,
			Color:     line.Color,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Subtotal:  line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
			IsQuick:   line.IsQuick(),
			IsReturn:  line.IsReturn,
		})
	}
	return out
}

// recordCustomerStats dispara la actualización de estadísticas del cliente en
// segundo plano. Corre con un context desacoplado del request: la venta ya
// está confirmada y este efecto no puede cancelarla ni fallarla.
func (uc *CommitSaleUseCase) recordCustomerStats(ctx context.Context, sale *entity.Sale) {
	if uc.stats == nil || sale.CustomerName == "" {
		return
	}
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := uc.stats.RecordPurchase(bg, sale.CustomerName, sale.Total, sale.CreatedAt); err != nil {
			uc.log.Error().Err(err).
				Str("customer", sale.CustomerName).
				Str("sale_number", sale.SaleNumber).
				Msg("no se pudieron actualizar las estadísticas del cliente")
		}
	}()
}
