package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitLineItemRequest una línea de producto dentro del body de un lote.
// Las reglas declarativas van en tags de validator; unit_price se valida a
// mano porque decimal.Decimal no soporta los tags numéricos.
type SubmitLineItemRequest struct {
	ProductID  string           `json:"product_id" validate:"required"`
	Name       string           `json:"name"`
	SKU        string           `json:"sku"`
	Unit       string           `json:"unit"`
	Quantity   int64            `json:"quantity" validate:"required,gt=0"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	BatchLabel string           `json:"batch_label"`
}

// SubmitBatchRequest body para POST /api/stocks/in y /api/stocks/out.
// La dirección la fija la ruta, no el body.
type SubmitBatchRequest struct {
	BatchName string                  `json:"batch_name"`
	Reference string                  `json:"reference"`
	Note      string                  `json:"note"`
	Items     []SubmitLineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SubmitBatchResponse resultado de un envío de lote: id del registro de
// auditoría más los contadores agregados de la conciliación. Upserts es
// siempre 0 (el conciliador nunca inserta productos).
type SubmitBatchResponse struct {
	BatchID  string `json:"batch_id"`
	Matched  int64  `json:"matched"`
	Modified int64  `json:"modified"`
	Upserts  int64  `json:"upserts"`
}

// LineItemResponse línea de un lote en respuestas de consulta.
type LineItemResponse struct {
	ProductID  string           `json:"product_id"`
	Name       string           `json:"name"`
	SKU        string           `json:"sku,omitempty"`
	Unit       string           `json:"unit,omitempty"`
	Quantity   int64            `json:"quantity"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	BatchLabel string           `json:"batch_label,omitempty"`
}

// BatchResponse un lote del libro mayor en respuestas de consulta.
type BatchResponse struct {
	ID         string             `json:"id"`
	Direction  string             `json:"direction"`
	BatchName  string             `json:"batch_name,omitempty"`
	Reference  string             `json:"reference,omitempty"`
	Note       string             `json:"note,omitempty"`
	Items      []LineItemResponse `json:"items"`
	Reconciled bool               `json:"reconciled"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// LabelItemDTO línea finalizada que se expone al colaborador de etiquetas.
// Este motor no renderiza nada: sólo entrega la lista persistida.
type LabelItemDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Unit      string `json:"unit,omitempty"`
	Quantity  int64  `json:"quantity"`
}
