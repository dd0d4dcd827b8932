package stocks

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// DocumentUseCase genera documentos derivados de un lote persistido:
// comprobante PDF y export XML. Lee del libro mayor, nunca lo modifica.
type DocumentUseCase struct {
	batchRepo repository.BatchRepository
	pdf       VoucherGenerator
	xml       LedgerExporter
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(batchRepo repository.BatchRepository, pdf VoucherGenerator, xml LedgerExporter) *DocumentUseCase {
	return &DocumentUseCase{batchRepo: batchRepo, pdf: pdf, xml: xml}
}

// BatchVoucherPDF genera el comprobante PDF del lote.
func (uc *DocumentUseCase) BatchVoucherPDF(ctx context.Context, id string) ([]byte, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	data, err := uc.pdf.GenerateBatchVoucher(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("generar comprobante: %w", err)
	}
	return data, nil
}

// BatchXML serializa el lote a su documento XML de intercambio.
func (uc *DocumentUseCase) BatchXML(id string) ([]byte, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	data, err := uc.xml.ExportBatch(batch)
	if err != nil {
		return nil, fmt.Errorf("exportar lote: %w", err)
	}
	return data, nil
}
