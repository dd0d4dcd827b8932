package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
	"github.com/jhoicas/Almacen-api/pkg/normalize"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). La columna search_name guarda el nombre plegado
// para búsquedas insensibles a mayúsculas y acentos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, price, unit, quantity, qty_alert_threshold, created_at, updated_at`

// Create persiste un nuevo producto. Quantity inicia en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, search_name, description, price, unit, quantity, qty_alert_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, normalize.Fold(product.Name),
		product.Description, product.Price, product.Unit,
		product.QtyAlertThreshold, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, o nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetBySKU obtiene un producto por SKU, o nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku))
}

// Update actualiza los campos editables del producto. Nunca toca quantity:
// la existencia sólo se mueve vía ApplyQuantityDeltas.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, search_name = $3, description = $4, price = $5, unit = $6,
		    qty_alert_threshold = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, normalize.Fold(product.Name), product.Description,
		product.Price, product.Unit, product.QtyAlertThreshold, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto.
func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos; search (ya plegado por el caller) filtra por nombre
// normalizado o SKU.
func (r *ProductRepo) List(search string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	pos := 1
	if search != "" {
		query += fmt.Sprintf(" WHERE search_name LIKE $%d OR lower(sku) LIKE $%d", pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.queryMany(query, args...)
}

// ListLowStock lista productos con existencia en o bajo su umbral de alerta.
func (r *ProductRepo) ListLowStock(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE quantity <= qty_alert_threshold
		ORDER BY quantity ASC LIMIT $1 OFFSET $2`
	return r.queryMany(query, limit, offset)
}

// ApplyQuantityDeltas es la operación del conciliador: un UPDATE aditivo e
// independiente por producto, sin transacción ni orden entre ellos. Un
// producto inexistente cuenta como no-match (jamás upsert, jamás error); una
// falla de sentencia se acumula y no bloquea a los demás productos. No hay
// piso: existencias concurrentes pueden quedar negativas, eso es aceptado.
func (r *ProductRepo) ApplyQuantityDeltas(deltas map[string]decimal.Decimal) (stock.ReconcileResult, error) {
	ctx := context.Background()
	query := `
		UPDATE products
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1`

	var result stock.ReconcileResult
	var faults []error
	for productID, delta := range deltas {
		tag, err := r.q.Exec(ctx, query, productID, delta)
		if err != nil {
			faults = append(faults, fmt.Errorf("increment product %s: %w", productID, err))
			continue
		}
		// En PostgreSQL un UPDATE que encuentra la fila siempre la cuenta
		// como afectada; matched y modified coinciden.
		result.Matched += tag.RowsAffected()
		result.Modified += tag.RowsAffected()
	}
	return result, errors.Join(faults...)
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Unit,
		&p.Quantity, &p.QtyAlertThreshold, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) queryMany(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Unit,
			&p.Quantity, &p.QtyAlertThreshold, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
