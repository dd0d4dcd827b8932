package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// BatchRepository define el puerto de persistencia del libro mayor de lotes.
// El libro es append-only: no existe Update ni Delete de lotes; la única
// mutación permitida es la bandera reconciled vía MarkReconciled, para que
// una divergencia entre libro y existencias sea detectable por un job de
// reparación futuro.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	List(direction string, limit, offset int) ([]*entity.Batch, error)
	MarkReconciled(id string) error
	ListUnreconciled(limit int) ([]*entity.Batch, error)
}
