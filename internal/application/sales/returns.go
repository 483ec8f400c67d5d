package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/stock"
	"github.com/RoseMODA/rosema-pos-sub001/pkg/logger"
)

// ReturnItemInput selecciona una línea de la venta original para devolver.
// ItemIndex referencia la posición dentro de Sale.Items (las fotos pueden
// repetir producto/talle/color, el índice es inequívoco).
type ReturnItemInput struct {
	ItemIndex       int
	Quantity        int
	DiscountPercent decimal.Decimal
}

// ProcessReturnInput es la devolución completa sobre una venta pasada.
type ProcessReturnInput struct {
	SaleID string
	Items  []ReturnItemInput
}

// ReturnResult agrupa los registros creados y el total devuelto.
type ReturnResult struct {
	Returns []*entity.Return
	Total   decimal.Decimal
}

// ReturnUseCase procesa devoluciones y cambios: revierte el efecto de stock
// y el efecto financiero de líneas ya vendidas. Opera sobre la variante
// aunque su stock actual sea cero (lo devuelto salió de stock que ya se
// agotó o reasignó).
type ReturnUseCase struct {
	txRunner    TxRunner
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, productRepo repository.ProductRepository, log *logger.Logger) *ReturnUseCase {
	return &ReturnUseCase{txRunner: txRunner, saleRepo: saleRepo, productRepo: productRepo, log: log}
}

// ProcessReturn devuelve las líneas seleccionadas de una venta. Cada ítem se
// capa por separado a la cantidad vendida originalmente; el total agregado es
// Σ(precio × cantidadDevuelta) solo sobre los seleccionados. El incremento de
// stock y los registros de devolución se escriben en una transacción.
// Un descuento fuera de [0,100] se rechaza antes de tocar stock: indica un
// error del operador que vale la pena hacer visible, no clampear.
func (uc *ReturnUseCase) ProcessReturn(ctx context.Context, in ProcessReturnInput) (*ReturnResult, error) {
	if in.SaleID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if err := validateDiscountPercent(item.DiscountPercent); err != nil {
			return nil, err
		}
	}

	sale, err := uc.saleRepo.GetByID(in.SaleID)
	if err != nil {
		return nil, fmt.Errorf("leer venta: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}

	now := time.Now()
	result := &ReturnResult{Total: decimal.Zero}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		_ repository.SaleCounterRepository,
		returnRepo repository.ReturnRepository,
	) error {
		for _, item := range in.Items {
			if item.ItemIndex < 0 || item.ItemIndex >= len(sale.Items) {
				return domain.ErrInvalidInput
			}
			sold := sale.Items[item.ItemIndex]

			// Cap independiente por ítem: 0 ≤ devuelto ≤ vendido.
			qty := item.Quantity
			if qty > sold.Quantity {
				qty = sold.Quantity
			}

			if err := uc.restockVariant(productRepo, sold, qty); err != nil {
				return err
			}

			actual := actualPricePaid(sold.UnitPrice, item.DiscountPercent)
			ret := &entity.Return{
				ID:              uuid.New().String(),
				SaleID:          sale.ID,
				SaleNumber:      sale.SaleNumber,
				ProductID:       sold.ProductID,
				ProductName:     sold.Name,
				Size:            sold.Size,
				Color:           sold.Color,
				Quantity:        qty,
				OriginalPrice:   sold.UnitPrice,
				DiscountApplied: item.DiscountPercent,
				ActualPricePaid: actual,
				CreatedAt:       now,
			}
			if err := returnRepo.Create(ret); err != nil {
				return fmt.Errorf("persistir devolución: %w", err)
			}
			result.Returns = append(result.Returns, ret)
			result.Total = result.Total.Add(actual.Mul(decimal.NewFromInt(int64(qty))))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// restockVariant repone stock a la variante vendida dentro de la misma tx.
// Los ítems rápidos no tienen stock que reponer; si el producto fue borrado
// después de la venta, la devolución financiera sigue valiendo y el faltante
// de stock queda logueado.
func (uc *ReturnUseCase) restockVariant(productRepo repository.ProductRepository, sold entity.SaleItem, qty int) error {
	if sold.IsQuick || sold.ProductID == "" || (sold.Size == "" && sold.Color == "") {
		return nil
	}
	p, err := productRepo.GetForUpdate(sold.ProductID)
	if err != nil {
		return fmt.Errorf("bloquear producto %s: %w", sold.ProductID, err)
	}
	if p == nil {
		uc.log.Warn().Str("product_id", sold.ProductID).
			Msg("producto borrado después de la venta: devolución sin reposición de stock")
		return nil
	}
	updated, err := stock.Apply(p, sold.Size, sold.Color, qty)
	if err != nil {
		return err
	}
	if err := productRepo.UpdateVariants(p.ID, updated); err != nil {
		return fmt.Errorf("reescribir variantes de %s: %w", p.ID, err)
	}
	return nil
}

// BuildExchangeLine arma la línea negativa de un cambio: el artículo que el
// cliente entrega, valuado a precio original menos el descuento con que lo
// compró. No muta stock: el efecto ocurre recién al confirmar la venta que
// contiene la línea. La variante es válida aunque su stock actual sea cero.
func (uc *ReturnUseCase) BuildExchangeLine(ctx context.Context, productID, size, color string, discountPercent decimal.Decimal) (*entity.CartLine, error) {
	if err := validateDiscountPercent(discountPercent); err != nil {
		return nil, err
	}
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("leer producto: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	v, idx := stock.Find(p, size, color)
	if idx < 0 {
		return nil, domain.ErrVariantNotFound
	}
	return &entity.CartLine{
		Kind:      entity.LineKindRegistered,
		ProductID: p.ID,
		Name:      p.Name,
		Size:      size,
		Color:     color,
		UnitPrice: actualPricePaid(v.SalePrice, discountPercent),
		Quantity:  1,
		IsReturn:  true,
	}, nil
}

// actualPricePaid = precioOriginal × (1 − descuento/100).
func actualPricePaid(original, discountPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(decimal.NewFromInt(100)))
	return original.Mul(factor)
}

// validateDiscountPercent exige el rango [0,100]; fuera de rango se reporta,
// no se clampea.
func validateDiscountPercent(d decimal.Decimal) error {
	if d.LessThan(decimal.Zero) || d.GreaterThan(decimal.NewFromInt(100)) {
		return domain.ErrDiscountOutOfRange
	}
	return nil
}
