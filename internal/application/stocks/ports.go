package stocks

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
)

// EventPublisher publica eventos de dominio hacia colaboradores externos
// (notificaciones, integraciones). El envío es best-effort: el publicador
// registra sus propias fallas y nunca afecta el resultado del lote.
type EventPublisher interface {
	BatchReconciled(ctx context.Context, batch *entity.Batch, result stock.ReconcileResult)
}

// VoucherGenerator genera el comprobante PDF de un lote persistido.
type VoucherGenerator interface {
	GenerateBatchVoucher(ctx context.Context, batch *entity.Batch) ([]byte, error)
}

// LedgerExporter serializa un lote del libro mayor a un documento de
// intercambio (XML).
type LedgerExporter interface {
	ExportBatch(batch *entity.Batch) ([]byte, error)
}
