package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
)

// TestAggregate_SalidaConvierteEmpaque verifica que una salida de 3 cajas de
// 12 unidades produce un delta de -36 para el producto.
func TestAggregate_SalidaConvierteEmpaque(t *testing.T) {
	table := stock.BuildConversionTable(buildCatalog())
	items := []entity.LineItem{
		{ProductID: "P1", Unit: "Caja", Quantity: 3},
	}

	deltas := stock.Aggregate(items, entity.DirectionOut, table)

	require.Len(t, deltas, 1)
	assert.True(t, deltas["P1"].Equal(decimal.NewFromInt(-36)),
		"3 cajas x 12 deben restar 36, se obtuvo %s", deltas["P1"])
}

// TestAggregate_EntradaNoConvierte verifica la política vigente de entradas:
// la cantidad se guarda tal como se envió, sin aplicar la conversión del
// empaque (la existencia entra en la unidad nativa del producto).
func TestAggregate_EntradaNoConvierte(t *testing.T) {
	table := stock.BuildConversionTable(buildCatalog())
	items := []entity.LineItem{
		{ProductID: "P2", Unit: "Caja", Quantity: 2},
	}

	deltas := stock.Aggregate(items, entity.DirectionIn, table)

	require.Len(t, deltas, 1)
	assert.True(t, deltas["P2"].Equal(decimal.NewFromInt(2)),
		"la entrada debe sumar 2 sin convertir, se obtuvo %s", deltas["P2"])
}

// TestAggregate_ProductoRepetidoSeSuma verifica que dos líneas del mismo
// producto pliegan en una sola entrada del mapa (una única actualización).
func TestAggregate_ProductoRepetidoSeSuma(t *testing.T) {
	table := stock.BuildConversionTable(nil)
	items := []entity.LineItem{
		{ProductID: "P1", Quantity: 5},
		{ProductID: "P1", Quantity: 3},
	}

	deltas := stock.Aggregate(items, entity.DirectionOut, table)

	require.Len(t, deltas, 1, "el mismo producto debe agregarse en una sola entrada")
	assert.True(t, deltas["P1"].Equal(decimal.NewFromInt(-8)))
}

// TestAggregate_Conmutatividad verifica que reordenar las líneas del lote
// produce exactamente el mismo mapa de deltas.
func TestAggregate_Conmutatividad(t *testing.T) {
	table := stock.BuildConversionTable(buildCatalog())
	items := []entity.LineItem{
		{ProductID: "P1", Unit: "Caja", Quantity: 2},
		{ProductID: "P2", Quantity: 7},
		{ProductID: "P1", Quantity: 1},
		{ProductID: "P3", Unit: "Docena", Quantity: 4},
	}
	reversed := []entity.LineItem{items[3], items[2], items[1], items[0]}

	a := stock.Aggregate(items, entity.DirectionOut, table)
	b := stock.Aggregate(reversed, entity.DirectionOut, table)

	require.Equal(t, len(a), len(b))
	for productID, delta := range a {
		assert.True(t, delta.Equal(b[productID]),
			"delta de %s difiere según el orden: %s vs %s", productID, delta, b[productID])
	}
}

// TestAggregate_MezclaUnidades verifica la combinación de empaque y unidad
// base sobre el mismo producto en un solo lote de salida.
func TestAggregate_MezclaUnidades(t *testing.T) {
	table := stock.BuildConversionTable(buildCatalog())
	items := []entity.LineItem{
		{ProductID: "P1", Unit: "Caja", Quantity: 2},   // -24
		{ProductID: "P1", Unit: "Unidad", Quantity: 5}, // -5
		{ProductID: "P1", Quantity: 1},                 // -1, sin unidad = base
	}

	deltas := stock.Aggregate(items, entity.DirectionOut, table)

	assert.True(t, deltas["P1"].Equal(decimal.NewFromInt(-30)))
}
