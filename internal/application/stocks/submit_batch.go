package stocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
	"github.com/jhoicas/Almacen-api/internal/metrics"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// SubmitBatchUseCase orquesta el envío de un lote de stock: validar líneas,
// persistir el lote en el libro mayor, resolver unidades, agregar deltas por
// producto y conciliar las existencias con incrementos independientes.
//
// El diseño es de dos escrituras sin transacción entre sí: primero el
// registro de auditoría, después la conciliación. Una falla entre ambas deja
// un lote auditado pero no aplicado, con reconciled=false para que sea
// detectable. No hay reintento automático.
type SubmitBatchUseCase struct {
	batchRepo   repository.BatchRepository
	unitRepo    repository.UnitRepository
	productRepo repository.ProductRepository
	events      EventPublisher // opcional; nil desactiva la publicación
	log         *logger.Logger
}

// NewSubmitBatchUseCase construye el caso de uso.
func NewSubmitBatchUseCase(
	batchRepo repository.BatchRepository,
	unitRepo repository.UnitRepository,
	productRepo repository.ProductRepository,
	events EventPublisher,
	log *logger.Logger,
) *SubmitBatchUseCase {
	return &SubmitBatchUseCase{
		batchRepo:   batchRepo,
		unitRepo:    unitRepo,
		productRepo: productRepo,
		events:      events,
		log:         log,
	}
}

// Submit procesa un lote en la dirección dada (in u out).
// Devuelve *ValidationError si alguna línea es inválida (nada se persiste),
// o el error de infraestructura si una de las dos escrituras falla. Un
// producto inexistente no es error: sólo baja los contadores matched/modified.
func (uc *SubmitBatchUseCase) Submit(ctx context.Context, direction string, in dto.SubmitBatchRequest) (*dto.SubmitBatchResponse, error) {
	if direction != entity.DirectionIn && direction != entity.DirectionOut {
		return nil, domain.ErrInvalidInput
	}
	if vErr := validateSubmit(&in); vErr != nil {
		metrics.BatchesRejected.Inc()
		return nil, vErr
	}

	now := time.Now()
	batch := &entity.Batch{
		ID:        uuid.New().String(),
		Direction: direction,
		BatchName: in.BatchName,
		Reference: in.Reference,
		Note:      in.Note,
		Items:     toLineItems(in.Items),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Primero el libro mayor: la pista de auditoría debe existir aunque la
	// conciliación posterior falle parcialmente.
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, fmt.Errorf("persistir lote: %w", err)
	}
	metrics.BatchesSubmitted.WithLabelValues(direction).Inc()
	metrics.BatchLineItems.Observe(float64(len(batch.Items)))

	// Foto fresca del catálogo de unidades por cada envío.
	units, err := uc.unitRepo.ListAll()
	if err != nil {
		metrics.ReconcileFaults.Inc()
		return nil, fmt.Errorf("cargar catálogo de unidades: %w", err)
	}
	table := stock.BuildConversionTable(units)
	deltas := stock.Aggregate(batch.Items, direction, table)

	result, err := uc.productRepo.ApplyQuantityDeltas(deltas)
	if err != nil {
		// El lote ya está auditado; la bandera queda en false y la
		// divergencia es detectable vía /api/stocks/batches/unreconciled.
		metrics.ReconcileFaults.Inc()
		uc.log.Error().Err(err).Str("batch_id", batch.ID).Msg("conciliación con fallas de la tienda")
		return nil, fmt.Errorf("conciliar existencias: %w", err)
	}
	if unmatched := int64(len(deltas)) - result.Matched; unmatched > 0 {
		metrics.ReconcileUnmatched.Add(float64(unmatched))
		uc.log.Warn().
			Str("batch_id", batch.ID).
			Int64("unmatched", unmatched).
			Msg("productos del lote no encontrados al conciliar")
	}

	if err := uc.batchRepo.MarkReconciled(batch.ID); err != nil {
		// Los deltas ya se aplicaron; sólo falló la bandera. Se registra y
		// se continúa: el job de reparación debe verificar antes de reaplicar.
		uc.log.Error().Err(err).Str("batch_id", batch.ID).Msg("no se pudo marcar el lote como conciliado")
	}

	if uc.events != nil {
		uc.events.BatchReconciled(ctx, batch, result)
	}

	return &dto.SubmitBatchResponse{
		BatchID:  batch.ID,
		Matched:  result.Matched,
		Modified: result.Modified,
		Upserts:  0,
	}, nil
}

// toLineItems copia las líneas del body al valor inmutable de dominio,
// conservando la foto de nombre y SKU tal como se declaró.
func toLineItems(items []dto.SubmitLineItemRequest) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.LineItem{
			ProductID:  it.ProductID,
			Name:       it.Name,
			SKU:        it.SKU,
			Unit:       it.Unit,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			BatchLabel: it.BatchLabel,
		})
	}
	return out
}
