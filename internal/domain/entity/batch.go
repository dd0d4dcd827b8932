package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones válidas para un lote de movimiento de stock.
const (
	DirectionIn  = "in"  // entrada de mercancía
	DirectionOut = "out" // salida de mercancía
)

// Batch representa un lote de entrada o salida de stock. Es la fuente de
// verdad de auditoría: una vez persistido nunca se modifica ni se elimina
// desde este motor (libro mayor append-only). El único campo mutable es
// Reconciled, que marca que el conciliador ya aplicó los deltas.
type Batch struct {
	ID         string
	Direction  string // in, out
	BatchName  string
	Reference  string // orden de compra, factura, nota, etc.
	Note       string
	Items      []LineItem
	Reconciled bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LineItem es una línea de producto dentro de un lote. Name y SKU son una
// foto del producto al momento del envío: si el producto cambia después,
// la línea conserva lo que se declaró mover.
type LineItem struct {
	ProductID  string
	Name       string
	SKU        string
	Unit       string // nombre de la unidad de medida; vacío = unidad base del producto
	Quantity   int64  // siempre > 0; el signo lo decide la dirección del lote
	UnitPrice  *decimal.Decimal
	BatchLabel string
}
