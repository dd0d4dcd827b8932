package entity

import "time"

// Tipos de unidad de medida.
const (
	UnitKindBase = "base" // unidad sin conversión (factor 1)
	UnitKindPack = "pack" // empaque que multiplica hacia una unidad base
)

// UnitOfMeasure representa una unidad de medida del catálogo. Una unidad
// pack resuelve en un solo salto a exactamente una unidad base con su
// multiplicador; no se soportan cadenas pack -> pack.
type UnitOfMeasure struct {
	ID           string
	Name         string
	Kind         string // base, pack
	BaseUnitID   string // requerido sólo si Kind == pack
	UnitsPerPack int64  // requerido sólo si Kind == pack; siempre > 0
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPack indica si la unidad es un empaque con multiplicador.
func (u *UnitOfMeasure) IsPack() bool {
	return u.Kind == UnitKindPack
}
