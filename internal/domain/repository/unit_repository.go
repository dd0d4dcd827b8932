package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// UnitRepository define el puerto de persistencia del catálogo de unidades.
// El motor de conciliación sólo usa ListAll (foto completa por lote); el
// resto es CRUD administrado fuera del motor.
type UnitRepository interface {
	Create(unit *entity.UnitOfMeasure) error
	GetByID(id string) (*entity.UnitOfMeasure, error)
	GetByName(name string) (*entity.UnitOfMeasure, error)
	Update(unit *entity.UnitOfMeasure) error
	Delete(id string) error
	ListAll() ([]*entity.UnitOfMeasure, error)
}
