package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoseMODA/rosema-pos-sub001/internal/application/sales"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/infrastructure/memory"
)

func cart(price int64) []entity.CartLine {
	return []entity.CartLine{{
		Kind:      entity.LineKindQuick,
		Name:      "Pañuelo",
		UnitPrice: decimal.NewFromInt(price),
		Quantity:  1,
	}}
}

func TestPending_ParkYRecall(t *testing.T) {
	uc := sales.NewPendingSaleUseCase(memory.NewPendingSaleStore())
	ctx := context.Background()

	err := uc.Park(ctx, "caja-1", cart(1000), entity.NoDiscount(), entity.PaymentCash, "Marta")
	require.NoError(t, err)

	pending, err := uc.Recall(ctx, "caja-1")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, "Marta", pending.CustomerName)
	assert.Len(t, pending.Items, 1)
	assert.True(t, pending.Items[0].UnitPrice.Equal(decimal.NewFromInt(1000)))
}

func TestPending_RecallSlotVacioDevuelveNil(t *testing.T) {
	uc := sales.NewPendingSaleUseCase(memory.NewPendingSaleStore())
	pending, err := uc.Recall(context.Background(), "caja-9")
	require.NoError(t, err, "slot vacío no es error")
	assert.Nil(t, pending)
}

func TestPending_ParkPisaElSlotOcupado(t *testing.T) {
	// Last write wins: sin merge ni error de conflicto.
	uc := sales.NewPendingSaleUseCase(memory.NewPendingSaleStore())
	ctx := context.Background()

	require.NoError(t, uc.Park(ctx, "caja-1", cart(1000), entity.NoDiscount(), entity.PaymentCash, ""))
	require.NoError(t, uc.Park(ctx, "caja-1", cart(9000), entity.NoDiscount(), entity.PaymentCash, ""))

	pending, err := uc.Recall(ctx, "caja-1")
	require.NoError(t, err)
	assert.True(t, pending.Items[0].UnitPrice.Equal(decimal.NewFromInt(9000)),
		"debe quedar el último carrito estacionado")
}

func TestPending_Release(t *testing.T) {
	uc := sales.NewPendingSaleUseCase(memory.NewPendingSaleStore())
	ctx := context.Background()

	require.NoError(t, uc.Park(ctx, "caja-1", cart(1000), entity.NoDiscount(), "", ""))
	require.NoError(t, uc.Release(ctx, "caja-1"))

	pending, err := uc.Recall(ctx, "caja-1")
	require.NoError(t, err)
	assert.Nil(t, pending)

	// Liberar de nuevo un slot ya vacío sigue sin ser error.
	assert.NoError(t, uc.Release(ctx, "caja-1"))
}

func TestPending_SlotVacioEsInvalido(t *testing.T) {
	uc := sales.NewPendingSaleUseCase(memory.NewPendingSaleStore())
	err := uc.Park(context.Background(), "", cart(1000), entity.NoDiscount(), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPending_ElSlotGuardaUnaFotoDelCarrito(t *testing.T) {
	// Misma semántica que el backend Redis (que serializa): ni mutar el
	// carrito del caller después de estacionar ni mutar lo recuperado
	// altera lo guardado en el slot.
	uc := sales.NewPendingSaleUseCase(memory.NewPendingSaleStore())
	ctx := context.Background()

	items := cart(1000)
	require.NoError(t, uc.Park(ctx, "caja-1", items, entity.NoDiscount(), entity.PaymentCash, ""))
	items[0].UnitPrice = decimal.NewFromInt(9999)

	pending, err := uc.Recall(ctx, "caja-1")
	require.NoError(t, err)
	assert.True(t, pending.Items[0].UnitPrice.Equal(decimal.NewFromInt(1000)),
		"mutar el carrito original no debe tocar el slot")

	pending.Items[0].Quantity = 99
	again, err := uc.Recall(ctx, "caja-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity,
		"mutar lo recuperado no debe tocar el slot")
}
