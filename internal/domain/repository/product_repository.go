package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// ApplyQuantityDeltas es la operación del conciliador: por cada par
// (productID, delta) emite un incremento independiente sobre quantity.
// Las actualizaciones no tienen orden ni transacción entre sí; un producto
// inexistente cuenta como no-match (nunca upsert, nunca error) y una falla
// de la tienda en un producto no bloquea a los demás. Los errores de
// sentencia se acumulan en el error devuelto junto con los contadores.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	List(search string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(limit, offset int) ([]*entity.Product, error)
	ApplyQuantityDeltas(deltas map[string]decimal.Decimal) (stock.ReconcileResult, error)
}
