package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UnitUseCase CRUD del catálogo de unidades de medida. Aquí se protege el
// invariante de un solo salto: un pack siempre apunta a una unidad base
// existente con multiplicador positivo; nunca a otro pack.
type UnitUseCase struct {
	unitRepo repository.UnitRepository
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(unitRepo repository.UnitRepository) *UnitUseCase {
	return &UnitUseCase{unitRepo: unitRepo}
}

// Create crea una unidad. Devuelve ErrDuplicate si el nombre ya existe y
// ErrInvalidInput si un pack no cumple el invariante.
func (uc *UnitUseCase) Create(in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	existing, _ := uc.unitRepo.GetByName(in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	unit := &entity.UnitOfMeasure{
		ID:   uuid.New().String(),
		Name: in.Name,
		Kind: in.Kind,
	}
	if in.Kind == entity.UnitKindPack {
		if err := uc.checkPack(in.BaseUnitID, in.UnitsPerPack); err != nil {
			return nil, err
		}
		unit.BaseUnitID = in.BaseUnitID
		unit.UnitsPerPack = in.UnitsPerPack
	}
	now := time.Now()
	unit.CreatedAt = now
	unit.UpdatedAt = now
	if err := uc.unitRepo.Create(unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// GetByID devuelve una unidad o ErrNotFound.
func (uc *UnitUseCase) GetByID(id string) (*dto.UnitResponse, error) {
	unit, err := uc.unitRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	return toUnitResponse(unit), nil
}

// List devuelve el catálogo completo.
func (uc *UnitUseCase) List() ([]dto.UnitResponse, error) {
	units, err := uc.unitRepo.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, *toUnitResponse(u))
	}
	return out, nil
}

// Update edita una unidad manteniendo el invariante de pack.
func (uc *UnitUseCase) Update(id string, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	unit, err := uc.unitRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	unit.Name = in.Name
	unit.Kind = in.Kind
	unit.BaseUnitID = ""
	unit.UnitsPerPack = 0
	if in.Kind == entity.UnitKindPack {
		if err := uc.checkPack(in.BaseUnitID, in.UnitsPerPack); err != nil {
			return nil, err
		}
		unit.BaseUnitID = in.BaseUnitID
		unit.UnitsPerPack = in.UnitsPerPack
	}
	unit.UpdatedAt = time.Now()
	if err := uc.unitRepo.Update(unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// Delete elimina una unidad del catálogo.
func (uc *UnitUseCase) Delete(id string) error {
	unit, err := uc.unitRepo.GetByID(id)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.ErrNotFound
	}
	return uc.unitRepo.Delete(id)
}

// checkPack valida que un pack apunte a una unidad base existente (un solo
// salto, sin cadenas pack -> pack) con multiplicador positivo.
func (uc *UnitUseCase) checkPack(baseUnitID string, unitsPerPack int64) error {
	if baseUnitID == "" || unitsPerPack <= 0 {
		return domain.ErrInvalidInput
	}
	base, err := uc.unitRepo.GetByID(baseUnitID)
	if err != nil {
		return err
	}
	if base == nil {
		return domain.ErrNotFound
	}
	if base.Kind != entity.UnitKindBase {
		return domain.ErrInvalidInput
	}
	return nil
}

func toUnitResponse(u *entity.UnitOfMeasure) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:           u.ID,
		Name:         u.Name,
		Kind:         u.Kind,
		BaseUnitID:   u.BaseUnitID,
		UnitsPerPack: u.UnitsPerPack,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
