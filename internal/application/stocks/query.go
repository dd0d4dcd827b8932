package stocks

import (
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// BatchQueryUseCase consultas de sólo lectura sobre el libro mayor.
type BatchQueryUseCase struct {
	batchRepo repository.BatchRepository
}

// NewBatchQueryUseCase construye el caso de uso.
func NewBatchQueryUseCase(batchRepo repository.BatchRepository) *BatchQueryUseCase {
	return &BatchQueryUseCase{batchRepo: batchRepo}
}

// GetByID devuelve un lote por id o ErrNotFound.
func (uc *BatchQueryUseCase) GetByID(id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	resp := toBatchResponse(batch)
	return &resp, nil
}

// List lista lotes, opcionalmente filtrados por dirección.
func (uc *BatchQueryUseCase) List(direction string, page dto.PageRequest) ([]dto.BatchResponse, error) {
	if direction != "" && direction != entity.DirectionIn && direction != entity.DirectionOut {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	batches, err := uc.batchRepo.List(direction, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return out, nil
}

// ListUnreconciled lista lotes auditados cuya conciliación nunca terminó
// (reconciled=false). Es la entrada para un job de reparación futuro.
func (uc *BatchQueryUseCase) ListUnreconciled(limit int) ([]dto.BatchResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	batches, err := uc.batchRepo.ListUnreconciled(limit)
	if err != nil {
		return nil, fmt.Errorf("listar lotes sin conciliar: %w", err)
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return out, nil
}

// LabelItems entrega las líneas finalizadas de un lote al colaborador de
// etiquetas. Este motor no formatea ni renderiza: sólo expone la lista.
func (uc *BatchQueryUseCase) LabelItems(id string) ([]dto.LabelItemDTO, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	labels := make([]dto.LabelItemDTO, 0, len(batch.Items))
	for _, item := range batch.Items {
		labels = append(labels, dto.LabelItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Unit:      item.Unit,
			Quantity:  item.Quantity,
		})
	}
	return labels, nil
}

func toBatchResponse(b *entity.Batch) dto.BatchResponse {
	items := make([]dto.LineItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, dto.LineItemResponse{
			ProductID:  item.ProductID,
			Name:       item.Name,
			SKU:        item.SKU,
			Unit:       item.Unit,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			BatchLabel: item.BatchLabel,
		})
	}
	return dto.BatchResponse{
		ID:         b.ID,
		Direction:  b.Direction,
		BatchName:  b.BatchName,
		Reference:  b.Reference,
		Note:       b.Note,
		Items:      items,
		Reconciled: b.Reconciled,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
