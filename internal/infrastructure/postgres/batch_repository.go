package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del libro mayor de lotes sobre PostgreSQL.
// Las tablas stock_batches y stock_batch_items son append-only: este
// adaptador no expone Update ni Delete; la única sentencia UPDATE que emite
// fija la bandera reconciled.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador del libro mayor. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste el lote con sus líneas. El lote entero se inserta antes
// de cualquier conciliación para que la pista de auditoría exista aunque la
// conciliación posterior falle.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	ctx := context.Background()
	query := `
		INSERT INTO stock_batches (id, direction, batch_name, reference, note, reconciled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, false, $6, $7)`
	if _, err := r.q.Exec(ctx, query,
		batch.ID, batch.Direction, nullable(batch.BatchName), nullable(batch.Reference),
		nullable(batch.Note), batch.CreatedAt, batch.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	itemQuery := `
		INSERT INTO stock_batch_items (id, batch_id, position, product_id, name, sku, unit, quantity, unit_price, batch_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i, item := range batch.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			uuid.New().String(), batch.ID, i, item.ProductID, item.Name,
			nullable(item.SKU), nullable(item.Unit), item.Quantity,
			item.UnitPrice, nullable(item.BatchLabel),
		); err != nil {
			return fmt.Errorf("insert batch item %d: %w", i, err)
		}
	}
	return nil
}

// GetByID obtiene un lote con sus líneas en orden de envío, o nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	ctx := context.Background()
	query := `
		SELECT id, direction, batch_name, reference, note, reconciled, created_at, updated_at
		FROM stock_batches WHERE id = $1`
	var b entity.Batch
	var batchName, reference, note *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Direction, &batchName, &reference, &note, &b.Reconciled, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	b.BatchName = deref(batchName)
	b.Reference = deref(reference)
	b.Note = deref(note)

	items, err := r.loadItems(ctx, []string{b.ID})
	if err != nil {
		return nil, err
	}
	b.Items = items[b.ID]
	return &b, nil
}

// List lista lotes del más reciente al más antiguo, opcionalmente filtrados
// por dirección.
func (r *BatchRepo) List(direction string, limit, offset int) ([]*entity.Batch, error) {
	query := `
		SELECT id, direction, batch_name, reference, note, reconciled, created_at, updated_at
		FROM stock_batches`
	args := []any{}
	pos := 1
	if direction != "" {
		query += fmt.Sprintf(" WHERE direction = $%d", pos)
		args = append(args, direction)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.queryBatches(query, args...)
}

// MarkReconciled fija la bandera reconciled del lote. Es la única mutación
// permitida sobre un lote persistido.
func (r *BatchRepo) MarkReconciled(id string) error {
	query := `UPDATE stock_batches SET reconciled = true WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("mark reconciled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark reconciled: lote %s no existe", id)
	}
	return nil
}

// ListUnreconciled lista lotes auditados cuya conciliación no terminó, del
// más antiguo al más reciente (orden natural de reparación).
func (r *BatchRepo) ListUnreconciled(limit int) ([]*entity.Batch, error) {
	query := `
		SELECT id, direction, batch_name, reference, note, reconciled, created_at, updated_at
		FROM stock_batches WHERE reconciled = false
		ORDER BY created_at ASC LIMIT $1`
	return r.queryBatches(query, limit)
}

func (r *BatchRepo) queryBatches(query string, args ...any) ([]*entity.Batch, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.Batch
	var ids []string
	for rows.Next() {
		var b entity.Batch
		var batchName, reference, note *string
		if err := rows.Scan(&b.ID, &b.Direction, &batchName, &reference, &note,
			&b.Reconciled, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		b.BatchName = deref(batchName)
		b.Reference = deref(reference)
		b.Note = deref(note)
		list = append(list, &b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range list {
		b.Items = items[b.ID]
	}
	return list, nil
}

// loadItems carga las líneas de un conjunto de lotes en una sola consulta,
// conservando el orden de envío (columna position).
func (r *BatchRepo) loadItems(ctx context.Context, batchIDs []string) (map[string][]entity.LineItem, error) {
	query := `
		SELECT batch_id, product_id, name, sku, unit, quantity, unit_price, batch_label
		FROM stock_batch_items WHERE batch_id = ANY($1)
		ORDER BY batch_id, position`
	rows, err := r.q.Query(ctx, query, batchIDs)
	if err != nil {
		return nil, fmt.Errorf("load batch items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]entity.LineItem, len(batchIDs))
	for rows.Next() {
		var batchID string
		var item entity.LineItem
		var sku, unit, label *string
		if err := rows.Scan(&batchID, &item.ProductID, &item.Name, &sku, &unit,
			&item.Quantity, &item.UnitPrice, &label); err != nil {
			return nil, fmt.Errorf("scan batch item: %w", err)
		}
		item.SKU = deref(sku)
		item.Unit = deref(unit)
		item.BatchLabel = deref(label)
		items[batchID] = append(items[batchID], item)
	}
	return items, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
