package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/stock"
)

func testProduct() *entity.Product {
	return &entity.Product{
		ID:   "779123",
		Name: "Remera básica",
		Variants: []entity.Variant{
			{Size: "M", Color: "Azul", Stock: 10, SalePrice: decimal.NewFromInt(2000)},
			{Size: "M", Color: "Negro", Stock: 0, SalePrice: decimal.NewFromInt(2000)},
			{Size: "L", Color: "", Stock: 3, SalePrice: decimal.NewFromInt(2500)},
		},
	}
}

func TestValidate_VarianteDisponible(t *testing.T) {
	avail, err := stock.Validate(testProduct(), "M", "Azul", 3)
	require.NoError(t, err)
	assert.True(t, avail.Available)
	assert.Equal(t, 10, avail.CurrentStock)
	assert.True(t, avail.Price.Equal(decimal.NewFromInt(2000)))
}

func TestValidate_VarianteInexistente(t *testing.T) {
	_, err := stock.Validate(testProduct(), "XL", "Azul", 1)
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
}

func TestValidate_StockInsuficiente(t *testing.T) {
	avail, err := stock.Validate(testProduct(), "M", "Negro", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// La disponibilidad igual informa stock y precio para el mensaje al operador.
	assert.Equal(t, 0, avail.CurrentStock)
	assert.False(t, avail.Available)
}

func TestValidate_ColorVacioEsValorExacto(t *testing.T) {
	// El color vacío matchea solo la variante sin color, no cualquiera.
	avail, err := stock.Validate(testProduct(), "L", "", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, avail.CurrentStock)

	_, err = stock.Validate(testProduct(), "M", "", 1)
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
}

func TestApply_VentaDecrementa(t *testing.T) {
	p := testProduct()
	updated, err := stock.Apply(p, "M", "Azul", -3)
	require.NoError(t, err)
	assert.Equal(t, 7, updated[0].Stock)
	// El producto original no se muta; la escritura es del orquestador.
	assert.Equal(t, 10, p.Variants[0].Stock)
}

func TestApply_DevolucionIncrementaSinTope(t *testing.T) {
	updated, err := stock.Apply(testProduct(), "M", "Negro", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated[1].Stock)
}

func TestApply_NuncaNegativo(t *testing.T) {
	// Red de seguridad: un delta mayor al stock deja cero, no negativo.
	updated, err := stock.Apply(testProduct(), "L", "", -99)
	require.NoError(t, err)
	assert.Equal(t, 0, updated[2].Stock)
}

func TestApply_RoundTripVentaDevolucion(t *testing.T) {
	// Vender q y devolver q restaura el stock original.
	p := testProduct()
	afterSale, err := stock.Apply(p, "M", "Azul", -4)
	require.NoError(t, err)
	p.Variants = afterSale
	afterReturn, err := stock.Apply(p, "M", "Azul", 4)
	require.NoError(t, err)
	assert.Equal(t, 10, afterReturn[0].Stock, "venta+devolución debe restaurar el stock")
}
