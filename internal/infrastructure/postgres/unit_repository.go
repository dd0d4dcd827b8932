package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación del catálogo de unidades sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

const unitColumns = `id, name, kind, base_unit_id, units_per_pack, created_at, updated_at`

// Create persiste una unidad de medida.
func (r *UnitRepo) Create(unit *entity.UnitOfMeasure) error {
	query := `
		INSERT INTO units (id, name, kind, base_unit_id, units_per_pack, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.Kind, nullable(unit.BaseUnitID),
		nullableInt(unit.UnitsPerPack), unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID, o nil si no existe.
func (r *UnitRepo) GetByID(id string) (*entity.UnitOfMeasure, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByName obtiene una unidad por nombre, o nil si no existe.
func (r *UnitRepo) GetByName(name string) (*entity.UnitOfMeasure, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE name = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name))
}

// Update actualiza una unidad.
func (r *UnitRepo) Update(unit *entity.UnitOfMeasure) error {
	query := `
		UPDATE units
		SET name = $2, kind = $3, base_unit_id = $4, units_per_pack = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.Kind, nullable(unit.BaseUnitID),
		nullableInt(unit.UnitsPerPack), unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una unidad.
func (r *UnitRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAll devuelve el catálogo completo. El motor de conciliación lo llama
// una vez por lote para armar su foto de conversiones.
func (r *UnitRepo) ListAll() ([]*entity.UnitOfMeasure, error) {
	query := `SELECT ` + unitColumns + ` FROM units ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.UnitOfMeasure
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UnitRepo) scanOne(row pgx.Row) (*entity.UnitOfMeasure, error) {
	u, err := scanUnit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func scanUnit(row pgx.Row) (*entity.UnitOfMeasure, error) {
	var u entity.UnitOfMeasure
	var baseUnitID *string
	var unitsPerPack *int64
	err := row.Scan(&u.ID, &u.Name, &u.Kind, &baseUnitID, &unitsPerPack, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan unit: %w", err)
	}
	u.BaseUnitID = deref(baseUnitID)
	if unitsPerPack != nil {
		u.UnitsPerPack = *unitsPerPack
	}
	return &u, nil
}

func nullableInt(n int64) *int64 {
	if n == 0 {
		return nil
	}
	return &n
}
