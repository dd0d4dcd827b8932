package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ReconcileResult agrega los contadores de una conciliación best-effort.
// Matched cuenta productos encontrados; Modified los efectivamente
// actualizados. Nunca se hace upsert, por eso no hay contador de inserts.
type ReconcileResult struct {
	Matched  int64
	Modified int64
}

// Aggregate pliega las líneas de un lote en un delta neto con signo por
// producto. Si un producto aparece varias veces en el lote sus cantidades
// se suman en una sola entrada, de modo que la conciliación emite exactamente
// una actualización por producto. La suma es conmutativa y asociativa:
// reordenar las líneas produce el mismo mapa.
//
// Política de conversión vigente: las salidas (out) convierten con la tabla
// de unidades y producen deltas negativos; las entradas (in) guardan la
// cantidad tal como se envió, en la unidad nativa del producto, sin aplicar
// conversión.
func Aggregate(items []entity.LineItem, direction string, table ConversionTable) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal, len(items))
	for _, item := range items {
		var base decimal.Decimal
		if direction == entity.DirectionOut {
			base = decimal.NewFromInt(item.Quantity * table.Factor(item.Unit)).Neg()
		} else {
			base = decimal.NewFromInt(item.Quantity)
		}
		deltas[item.ProductID] = deltas[item.ProductID].Add(base)
	}
	return deltas
}
