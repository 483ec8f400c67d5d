package sales_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoseMODA/rosema-pos-sub001/internal/application/sales"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/pkg/logger"
)

func remera() *entity.Product {
	return &entity.Product{
		ID:   "779001",
		Name: "Remera lisa",
		Variants: []entity.Variant{
			{Size: "M", Color: "Azul", Stock: 10, SalePrice: decimal.NewFromInt(2000)},
			{Size: "L", Color: "Azul", Stock: 1, SalePrice: decimal.NewFromInt(2200)},
		},
	}
}

func newCommitUC(store *fakeStore, stats sales.StatsRecorder) *sales.CommitSaleUseCase {
	return sales.NewCommitSaleUseCase(&fakeTxRunner{store}, &fakeProductRepo{store}, stats, logger.Nop())
}

func registeredLine(productID, size, color string, price int64, qty int) entity.CartLine {
	return entity.CartLine{
		Kind:      entity.LineKindRegistered,
		ProductID: productID,
		Size:      size,
		Color:     color,
		UnitPrice: decimal.NewFromInt(price),
		Quantity:  qty,
	}
}

func TestCommit_EscenarioCompleto(t *testing.T) {
	// Venta de 3 unidades a 2000 con 10%: subtotal 6000, descuento 600,
	// pre-redondeo 5400, total 5500; el stock de la variante baja de 10 a 7.
	store := newFakeStore(remera())
	uc := newCommitUC(store, nil)

	sale, err := uc.Commit(context.Background(), sales.CommitSaleInput{
		Items:         []entity.CartLine{registeredLine("779001", "M", "Azul", 2000, 3)},
		Discount:      entity.Discount{Type: entity.DiscountPercentage, Value: decimal.NewFromInt(10)},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(6000)), "subtotal: %s", sale.Subtotal)
	assert.True(t, sale.DiscountAmt.Equal(decimal.NewFromInt(600)), "descuento: %s", sale.DiscountAmt)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(5500)), "total redondeado: %s", sale.Total)
	assert.Equal(t, 7, store.variantStock("779001", "M", "Azul"))

	// La foto desnormaliza el nombre del producto.
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Remera lisa", sale.Items[0].Name)

	// Venta persistida y recuperable.
	persisted, _ := (&fakeSaleRepo{store}).GetByID(sale.ID)
	require.NotNil(t, persisted, "la venta debe quedar escrita")
}

func TestCommit_NumeracionSecuencialPorDia(t *testing.T) {
	store := newFakeStore(remera())
	uc := newCommitUC(store, nil)
	day := time.Now().Format("20060102")

	for i := 1; i <= 3; i++ {
		sale, err := uc.Commit(context.Background(), sales.CommitSaleInput{
			Items:         []entity.CartLine{registeredLine("779001", "M", "Azul", 2000, 1)},
			Discount:      entity.NoDiscount(),
			PaymentMethod: entity.PaymentCash,
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%s-%03d", day, i), sale.SaleNumber,
			"la venta %d debe llevar el sufijo %03d", i, i)
	}
}

func TestCommit_NumeracionCaidaDegradaATimestamp(t *testing.T) {
	// La falla de numeración no aborta la venta: degrada a un id por
	// timestamp en milisegundos.
	store := newFakeStore(remera())
	store.failCounter = true
	uc := newCommitUC(store, nil)

	before := time.Now().UnixMilli()
	sale, err := uc.Commit(context.Background(), sales.CommitSaleInput{
		Items:         []entity.CartLine{registeredLine("779001", "M", "Azul", 2000, 1)},
		Discount:      entity.NoDiscount(),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err, "la venta debe confirmarse igual")

	var ts int64
	_, scanErr := fmt.Sscanf(sale.SaleNumber, "%d", &ts)
	require.NoError(t, scanErr, "el número degradado debe ser un timestamp: %q", sale.SaleNumber)
	assert.GreaterOrEqual(t, ts, before)
}

func TestCommit_StockInsuficienteAbortaSinEscribir(t *testing.T) {
	// Atomicidad: si una de N líneas falla la validación, cero variantes se
	// mutan y no se crea ningún registro de venta.
	store := newFakeStore(remera())
	uc := newCommitUC(store, nil)

	_, err := uc.Commit(context.Background(), sales.CommitSaleInput{
		Items: []entity.CartLine{
			registeredLine("779001", "M", "Azul", 2000, 2),
			registeredLine("779001", "L", "Azul", 2200, 5), // stock 1
		},
		Discount:      entity.NoDiscount(),
		PaymentMethod: entity.PaymentCash,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, store.variantStock("779001", "M", "Azul"), "nada debe mutarse")
	assert.Empty(t, store.sales, "no debe quedar venta escrita")
}

func TestCommit_VarianteInexistenteAborta(t *testing.T) {
	store := newFakeStore(remera())
	uc := newCommitUC(store, nil)

	_, err := uc.Commit(context.Background(), sales.CommitSaleInput{
		Items:         []entity.CartLine{registeredLine("779001", "XL", "Rojo", 2000, 1)},
		Discount:      entity.NoDiscount(),
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
	assert.Empty(t, store.sales)
}

func TestCommit_FallaDePersistenciaRevierteStock(t *testing.T) {
	store := newFakeStore(remera())
	store.failSale = true
	uc := newCommitUC(store, nil)

	_, err := uc.Commit(context.Background(), sales.CommitSaleInput{
		Items:         []entity.CartLine{registeredLine("779001", "M", "Azul", 2000, 3)},
		Discount:      entity.NoDiscount(),
		PaymentMethod: entity.PaymentCash,
	})
	require.Error(t, err)
	assert.Equal(t, 10, store.variantStock("779001", "M", "Azul"),
		"el rollback debe dejar el stock intacto")
}

func TestCommit_ItemRapidoSinControlDeStock(t *testing.T) {
	// Un ítem rápido no registrado vende sin lookup de producto ni stock.
	store := newFakeStore(remera())
	uc := newCommitUC(store, nil)

	sale, err := uc.Commit(context.Background(), sales.CommitSaleInput{
		Items: []entity.CartLine{{
			Kind:      entity.LineKindQuick,
			Name:      "Cinturón feria",
			UnitPrice: decimal.NewFromInt(1500),
			Quantity:  2,
		}},
		Discount:      entity.NoDiscount(),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(3000)))
	assert.True(t, sale.Items[0].IsQuick)
	assert.Equal(t, 10, store.variantStock("779001", "M", "Azul"), "el stock no se toca")
}

func TestCommit_ItemSinNombreUsaFallback(t *testing.T) {
	store := newFakeStore(remera())
	uc := newCommitUC(store, nil)

	sale, err := uc.Commit(context.Background(), sales.CommitSaleInput{
		Items: []entity.CartLine{{
			Kind:      entity.LineKindQuick,
			UnitPrice: decimal.NewFromInt(1000),
			Quantity:  1,
		}},
		Discount:      entity.NoDiscount(),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, "Producto", sale.Items[0].Name)
}

func TestCommit_LineaDevolucionRestauraStock(t *testing.T) {
	// Una línea marcada como devolución dentro de la misma venta (cambio)
	// repone stock en lugar de consumirlo, y resta del subtotal.
	store := newFakeStore(remera())
	uc := newCommitUC(store, nil)

	retLine := registeredLine("779001", "L", "Azul", 2200, 1)
	retLine.IsReturn = true

	sale, err := uc.Commit(context.Background(), sales.CommitSaleInput{
		Items: []entity.CartLine{
			registeredLine("779001", "M", "Azul", 2000, 2),
			retLine,
		},
		Discount:      entity.NoDiscount(),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, store.variantStock("779001", "M", "Azul"))
	assert.Equal(t, 2, store.variantStock("779001", "L", "Azul"), "la devolución incrementa")
	// Subtotal 4000 - 2200 = 1800; redondeado 2000.
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(2000)), "total: %s", sale.Total)
}

func TestCommit_ActualizaEstadisticasDelCliente(t *testing.T) {
	store := newFakeStore(remera())
	stats := newFakeStats()
	uc := newCommitUC(store, stats)

	sale, err := uc.Commit(context.Background(), sales.CommitSaleInput{
		Items:         []entity.CartLine{registeredLine("779001", "M", "Azul", 2000, 1)},
		Discount:      entity.NoDiscount(),
		PaymentMethod: entity.PaymentDebit,
		CustomerName:  "Marta Pérez",
	})
	require.NoError(t, err)

	select {
	case <-stats.called:
	case <-time.After(2 * time.Second):
		t.Fatal("el update de estadísticas nunca se disparó")
	}
	stats.mu.Lock()
	defer stats.mu.Unlock()
	assert.Equal(t, "Marta Pérez", stats.name)
	assert.True(t, stats.total.Equal(sale.Total))
}

func TestCommit_FallaDeEstadisticasNoAfectaLaVenta(t *testing.T) {
	store := newFakeStore(remera())
	stats := newFakeStats()
	stats.fail = true
	uc := newCommitUC(store, stats)

	sale, err := uc.Commit(context.Background(), sales.CommitSaleInput{
		Items:         []entity.CartLine{registeredLine("779001", "M", "Azul", 2000, 1)},
		Discount:      entity.NoDiscount(),
		PaymentMethod: entity.PaymentCash,
		CustomerName:  "Marta Pérez",
	})
	require.NoError(t, err, "el CRM caído jamás voltea una venta confirmada")
	require.NotNil(t, sale)
	<-stats.called
	assert.Equal(t, 9, store.variantStock("779001", "M", "Azul"))
}

func TestCommit_CarritoVacioEsInvalido(t *testing.T) {
	uc := newCommitUC(newFakeStore(remera()), nil)
	_, err := uc.Commit(context.Background(), sales.CommitSaleInput{
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommit_LineaConKindDesconocidoEsInvalida(t *testing.T) {
	// Un kind que no es quick ni registered (p. ej. omitido en el JSON) se
	// rechaza en la validación de entrada, sin tocar stock ni reventar el
	// lookup de productos.
	store := newFakeStore(remera())
	uc := newCommitUC(store, nil)

	var err error
	assert.NotPanics(t, func() {
		_, err = uc.Commit(context.Background(), sales.CommitSaleInput{
			Items: []entity.CartLine{{
				Kind:      "banana",
				Size:      "M",
				UnitPrice: decimal.NewFromInt(2000),
				Quantity:  1,
			}},
			Discount:      entity.NoDiscount(),
			PaymentMethod: entity.PaymentCash,
		})
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, store.variantStock("779001", "M", "Azul"), "el stock no debe moverse")
}

func TestCommit_NumeracionReiniciaAlCambiarElDia(t *testing.T) {
	// La secuencia es por día calendario: al día siguiente vuelve a -001.
	store := newFakeStore(remera())
	clock := time.Date(2026, 8, 28, 18, 0, 0, 0, time.Local)
	uc := newCommitUC(store, nil).WithClock(func() time.Time { return clock })

	sell := func() *entity.Sale {
		sale, err := uc.Commit(context.Background(), sales.CommitSaleInput{
			Items:         []entity.CartLine{registeredLine("779001", "M", "Azul", 2000, 1)},
			Discount:      entity.NoDiscount(),
			PaymentMethod: entity.PaymentCash,
		})
		require.NoError(t, err)
		return sale
	}

	assert.Equal(t, "20260828-001", sell().SaleNumber)
	assert.Equal(t, "20260828-002", sell().SaleNumber)

	clock = clock.AddDate(0, 0, 1)
	assert.Equal(t, "20260829-001", sell().SaleNumber,
		"el primer ticket del día siguiente debe reiniciar en -001")
}
