package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type fakeUnitRepo struct {
	byID   map[string]*entity.UnitOfMeasure
	byName map[string]*entity.UnitOfMeasure
}

func newFakeUnitRepo(units ...*entity.UnitOfMeasure) *fakeUnitRepo {
	r := &fakeUnitRepo{byID: map[string]*entity.UnitOfMeasure{}, byName: map[string]*entity.UnitOfMeasure{}}
	for _, u := range units {
		r.byID[u.ID] = u
		r.byName[u.Name] = u
	}
	return r
}

func (r *fakeUnitRepo) Create(unit *entity.UnitOfMeasure) error {
	r.byID[unit.ID] = unit
	r.byName[unit.Name] = unit
	return nil
}

func (r *fakeUnitRepo) GetByID(id string) (*entity.UnitOfMeasure, error)     { return r.byID[id], nil }
func (r *fakeUnitRepo) GetByName(name string) (*entity.UnitOfMeasure, error) { return r.byName[name], nil }
func (r *fakeUnitRepo) Update(unit *entity.UnitOfMeasure) error              { return nil }
func (r *fakeUnitRepo) Delete(id string) error                               { return nil }

func (r *fakeUnitRepo) ListAll() ([]*entity.UnitOfMeasure, error) {
	out := make([]*entity.UnitOfMeasure, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

// TestCreateUnit_PackValido verifica la creación de un empaque apuntando a
// una base existente.
func TestCreateUnit_PackValido(t *testing.T) {
	repo := newFakeUnitRepo(&entity.UnitOfMeasure{ID: "u-base", Name: "Unidad", Kind: entity.UnitKindBase})
	uc := usecase.NewUnitUseCase(repo)

	resp, err := uc.Create(dto.CreateUnitRequest{
		Name: "Caja", Kind: entity.UnitKindPack, BaseUnitID: "u-base", UnitsPerPack: 12,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.UnitsPerPack)
	assert.Equal(t, "u-base", resp.BaseUnitID)
}

// TestCreateUnit_PackSinMultiplicador verifica que un pack sin
// units_per_pack positivo se rechaza.
func TestCreateUnit_PackSinMultiplicador(t *testing.T) {
	repo := newFakeUnitRepo(&entity.UnitOfMeasure{ID: "u-base", Name: "Unidad", Kind: entity.UnitKindBase})
	uc := usecase.NewUnitUseCase(repo)

	_, err := uc.Create(dto.CreateUnitRequest{
		Name: "Caja", Kind: entity.UnitKindPack, BaseUnitID: "u-base", UnitsPerPack: 0,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestCreateUnit_PackSobrePack verifica el invariante de un solo salto: un
// pack no puede apuntar a otro pack.
func TestCreateUnit_PackSobrePack(t *testing.T) {
	repo := newFakeUnitRepo(
		&entity.UnitOfMeasure{ID: "u-base", Name: "Unidad", Kind: entity.UnitKindBase},
		&entity.UnitOfMeasure{ID: "u-caja", Name: "Caja", Kind: entity.UnitKindPack, BaseUnitID: "u-base", UnitsPerPack: 12},
	)
	uc := usecase.NewUnitUseCase(repo)

	_, err := uc.Create(dto.CreateUnitRequest{
		Name: "Pallet", Kind: entity.UnitKindPack, BaseUnitID: "u-caja", UnitsPerPack: 10,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestCreateUnit_NombreDuplicado verifica que el nombre de unidad es único.
func TestCreateUnit_NombreDuplicado(t *testing.T) {
	repo := newFakeUnitRepo(&entity.UnitOfMeasure{ID: "u-base", Name: "Unidad", Kind: entity.UnitKindBase})
	uc := usecase.NewUnitUseCase(repo)

	_, err := uc.Create(dto.CreateUnitRequest{Name: "Unidad", Kind: entity.UnitKindBase})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
