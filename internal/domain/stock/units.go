// Package stock contiene el motor puro de conciliación de existencias:
// resolución de unidades de medida y agregación de lotes en deltas por
// producto. No tiene dependencias de infraestructura; los adaptadores le
// entregan el catálogo de unidades y él devuelve aritmética verificable.
package stock

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ConversionTable resuelve el factor de conversión de una unidad por nombre.
// Se construye una vez por envío de lote con la foto completa del catálogo;
// no hay caché entre peticiones.
type ConversionTable struct {
	factors map[string]int64
}

// BuildConversionTable arma la tabla a partir del catálogo de unidades.
// Una unidad base aporta factor 1; una unidad pack aporta UnitsPerPack.
// Un pack con multiplicador inválido se ignora y queda con factor 1.
func BuildConversionTable(units []*entity.UnitOfMeasure) ConversionTable {
	factors := make(map[string]int64, len(units))
	for _, u := range units {
		if u == nil || u.Name == "" {
			continue
		}
		if u.IsPack() && u.UnitsPerPack > 0 {
			factors[u.Name] = u.UnitsPerPack
			continue
		}
		factors[u.Name] = 1
	}
	return ConversionTable{factors: factors}
}

// Factor devuelve el multiplicador hacia la unidad base para el nombre dado.
// Un nombre vacío o desconocido se trata como unidad base (factor 1): es
// permisividad deliberada, no un error de validación.
func (t ConversionTable) Factor(unitName string) int64 {
	if f, ok := t.factors[unitName]; ok {
		return f
	}
	return 1
}
