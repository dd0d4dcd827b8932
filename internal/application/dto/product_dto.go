package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU               string          `json:"sku" validate:"required"`
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Unit              string          `json:"unit"`
	QtyAlertThreshold int64           `json:"qty_alert_threshold" validate:"min=0"`
}

// UpdateProductRequest body para PUT /api/products/:id. No incluye quantity:
// la existencia sólo se mueve a través de lotes conciliados.
type UpdateProductRequest struct {
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Unit              string          `json:"unit"`
	QtyAlertThreshold int64           `json:"qty_alert_threshold" validate:"min=0"`
}

// ProductResponse un producto en respuestas.
type ProductResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Unit              string          `json:"unit,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	QtyAlertThreshold int64           `json:"qty_alert_threshold"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
