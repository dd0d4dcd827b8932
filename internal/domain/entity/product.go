package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Quantity es la existencia actual; el motor de conciliación nunca la fija
// directamente, sólo aplica incrementos con signo (deltas aditivos).
type Product struct {
	ID                string
	SKU               string // código único
	Name              string
	Description       string
	Price             decimal.Decimal // precio de venta
	Unit              string          // unidad base del producto (informativa)
	Quantity          decimal.Decimal
	QtyAlertThreshold int64 // umbral de alerta de stock bajo
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
