package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
)

func buildCatalog() []*entity.UnitOfMeasure {
	return []*entity.UnitOfMeasure{
		{ID: "u-unidad", Name: "Unidad", Kind: entity.UnitKindBase},
		{ID: "u-caja", Name: "Caja", Kind: entity.UnitKindPack, BaseUnitID: "u-unidad", UnitsPerPack: 12},
		{ID: "u-docena", Name: "Docena", Kind: entity.UnitKindPack, BaseUnitID: "u-unidad", UnitsPerPack: 12},
	}
}

// TestFactor_UnidadBase verifica que una unidad base resuelve a factor 1.
func TestFactor_UnidadBase(t *testing.T) {
	table := stock.BuildConversionTable(buildCatalog())
	assert.Equal(t, int64(1), table.Factor("Unidad"))
}

// TestFactor_Pack verifica que un empaque resuelve a su multiplicador.
func TestFactor_Pack(t *testing.T) {
	table := stock.BuildConversionTable(buildCatalog())
	assert.Equal(t, int64(12), table.Factor("Caja"))
}

// TestFactor_UnidadDesconocida verifica la permisividad deliberada: un nombre
// desconocido o vacío se trata como unidad base (factor 1), nunca como error.
func TestFactor_UnidadDesconocida(t *testing.T) {
	table := stock.BuildConversionTable(buildCatalog())
	assert.Equal(t, int64(1), table.Factor("Pallet"))
	assert.Equal(t, int64(1), table.Factor(""))
}

// TestFactor_PackInvalido verifica que un pack con multiplicador no positivo
// degrada a factor 1 en lugar de propagar datos corruptos del catálogo.
func TestFactor_PackInvalido(t *testing.T) {
	units := []*entity.UnitOfMeasure{
		{ID: "u-rota", Name: "Rota", Kind: entity.UnitKindPack, BaseUnitID: "u-unidad", UnitsPerPack: 0},
	}
	table := stock.BuildConversionTable(units)
	assert.Equal(t, int64(1), table.Factor("Rota"))
}

// TestBuildConversionTable_CatalogoVacio verifica que sin catálogo todo
// resuelve a factor 1.
func TestBuildConversionTable_CatalogoVacio(t *testing.T) {
	table := stock.BuildConversionTable(nil)
	assert.Equal(t, int64(1), table.Factor("Caja"))
}
