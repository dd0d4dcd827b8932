package stocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stocks"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos del caso de uso
// ──────────────────────────────────────────────────────────────────────────────

type fakeBatchRepo struct {
	batches    map[string]*entity.Batch
	reconciled map[string]bool
	createErr  error
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: map[string]*entity.Batch{}, reconciled: map[string]bool{}}
}

func (r *fakeBatchRepo) Create(batch *entity.Batch) error {
	if r.createErr != nil {
		return r.createErr
	}
	// Copia defensiva: el libro mayor guarda lo que se declaró, no un puntero vivo.
	stored := *batch
	stored.Items = append([]entity.LineItem(nil), batch.Items...)
	r.batches[batch.ID] = &stored
	return nil
}

func (r *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	out := *b
	out.Reconciled = r.reconciled[id]
	return &out, nil
}

func (r *fakeBatchRepo) List(string, int, int) ([]*entity.Batch, error) { return nil, nil }

func (r *fakeBatchRepo) MarkReconciled(id string) error {
	r.reconciled[id] = true
	return nil
}

func (r *fakeBatchRepo) ListUnreconciled(int) ([]*entity.Batch, error) { return nil, nil }

type fakeUnitRepo struct {
	units   []*entity.UnitOfMeasure
	listErr error
}

func (r *fakeUnitRepo) Create(*entity.UnitOfMeasure) error                 { return nil }
func (r *fakeUnitRepo) GetByID(string) (*entity.UnitOfMeasure, error)      { return nil, nil }
func (r *fakeUnitRepo) GetByName(string) (*entity.UnitOfMeasure, error)    { return nil, nil }
func (r *fakeUnitRepo) Update(*entity.UnitOfMeasure) error                 { return nil }
func (r *fakeUnitRepo) Delete(string) error                                { return nil }
func (r *fakeUnitRepo) ListAll() ([]*entity.UnitOfMeasure, error) {
	return r.units, r.listErr
}

type fakeProductRepo struct {
	quantities map[string]decimal.Decimal
	applyOps   int
	applyErr   error
}

func newFakeProductRepo(qty map[string]decimal.Decimal) *fakeProductRepo {
	return &fakeProductRepo{quantities: qty}
}

func (r *fakeProductRepo) Create(*entity.Product) error                       { return nil }
func (r *fakeProductRepo) GetByID(string) (*entity.Product, error)            { return nil, nil }
func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error)           { return nil, nil }
func (r *fakeProductRepo) Update(*entity.Product) error                       { return nil }
func (r *fakeProductRepo) Delete(string) error                                { return nil }
func (r *fakeProductRepo) List(string, int, int) ([]*entity.Product, error)   { return nil, nil }
func (r *fakeProductRepo) ListLowStock(int, int) ([]*entity.Product, error)   { return nil, nil }

func (r *fakeProductRepo) ApplyQuantityDeltas(deltas map[string]decimal.Decimal) (stock.ReconcileResult, error) {
	if r.applyErr != nil {
		return stock.ReconcileResult{}, r.applyErr
	}
	var result stock.ReconcileResult
	for productID, delta := range deltas {
		r.applyOps++
		current, ok := r.quantities[productID]
		if !ok {
			continue // no-match: jamás upsert
		}
		r.quantities[productID] = current.Add(delta)
		result.Matched++
		result.Modified++
	}
	return result, nil
}

func buildUseCase(batchRepo *fakeBatchRepo, unitRepo *fakeUnitRepo, productRepo *fakeProductRepo) *stocks.SubmitBatchUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return stocks.NewSubmitBatchUseCase(batchRepo, unitRepo, productRepo, nil, log)
}

func packCatalog() []*entity.UnitOfMeasure {
	return []*entity.UnitOfMeasure{
		{ID: "u-unidad", Name: "Unidad", Kind: entity.UnitKindBase},
		{ID: "u-caja", Name: "Caja", Kind: entity.UnitKindPack, BaseUnitID: "u-unidad", UnitsPerPack: 12},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación: nada se persiste si el lote es inválido
// ──────────────────────────────────────────────────────────────────────────────

// TestSubmit_LoteVacioNoEscribe verifica que un lote sin líneas se rechaza en
// validación y el libro mayor queda intacto.
func TestSubmit_LoteVacioNoEscribe(t *testing.T) {
	batchRepo := newFakeBatchRepo()
	uc := buildUseCase(batchRepo, &fakeUnitRepo{}, newFakeProductRepo(nil))

	_, err := uc.Submit(context.Background(), entity.DirectionOut, dto.SubmitBatchRequest{})

	var vErr *stocks.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "items")
	assert.Empty(t, batchRepo.batches, "un lote inválido jamás debe llegar al libro mayor")
}

// TestSubmit_LineasInvalidas verifica el mapa campo a mensaje para cantidad
// no positiva, product_id vacío y precio negativo.
func TestSubmit_LineasInvalidas(t *testing.T) {
	batchRepo := newFakeBatchRepo()
	uc := buildUseCase(batchRepo, &fakeUnitRepo{}, newFakeProductRepo(nil))
	negative := decimal.NewFromInt(-5)

	_, err := uc.Submit(context.Background(), entity.DirectionIn, dto.SubmitBatchRequest{
		Items: []dto.SubmitLineItemRequest{
			{ProductID: "P1", Quantity: 0},
			{ProductID: "", Quantity: 3},
			{ProductID: "P3", Quantity: 1, UnitPrice: &negative},
		},
	})

	var vErr *stocks.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "items[0].quantity")
	assert.Contains(t, vErr.Fields, "items[1].product_id")
	assert.Contains(t, vErr.Fields, "items[2].unit_price")
	assert.Empty(t, batchRepo.batches)
}

// TestSubmit_DireccionInvalida verifica que una dirección desconocida se
// rechaza antes de validar líneas.
func TestSubmit_DireccionInvalida(t *testing.T) {
	uc := buildUseCase(newFakeBatchRepo(), &fakeUnitRepo{}, newFakeProductRepo(nil))

	_, err := uc.Submit(context.Background(), "transfer", dto.SubmitBatchRequest{
		Items: []dto.SubmitLineItemRequest{{ProductID: "P1", Quantity: 1}},
	})

	require.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conciliación
// ──────────────────────────────────────────────────────────────────────────────

// TestSubmit_SalidaConvierteEmpaque verifica el flujo completo de una salida:
// 3 cajas de 12 restan 36 al producto y el lote queda conciliado.
func TestSubmit_SalidaConvierteEmpaque(t *testing.T) {
	batchRepo := newFakeBatchRepo()
	productRepo := newFakeProductRepo(map[string]decimal.Decimal{"P1": decimal.NewFromInt(50)})
	uc := buildUseCase(batchRepo, &fakeUnitRepo{units: packCatalog()}, productRepo)

	resp, err := uc.Submit(context.Background(), entity.DirectionOut, dto.SubmitBatchRequest{
		Reference: "OC-001",
		Items:     []dto.SubmitLineItemRequest{{ProductID: "P1", Unit: "Caja", Quantity: 3}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Matched)
	assert.Equal(t, int64(1), resp.Modified)
	assert.Equal(t, int64(0), resp.Upserts)
	assert.True(t, productRepo.quantities["P1"].Equal(decimal.NewFromInt(14)),
		"50 - 3x12 debe dejar 14, quedó %s", productRepo.quantities["P1"])

	stored, _ := batchRepo.GetByID(resp.BatchID)
	require.NotNil(t, stored)
	assert.True(t, stored.Reconciled)
}

// TestSubmit_EntradaSinConversion verifica la política vigente: una entrada
// de 2 cajas suma 2, no 24 (la cantidad entra en la unidad nativa).
func TestSubmit_EntradaSinConversion(t *testing.T) {
	productRepo := newFakeProductRepo(map[string]decimal.Decimal{"P2": decimal.NewFromInt(10)})
	uc := buildUseCase(newFakeBatchRepo(), &fakeUnitRepo{units: packCatalog()}, productRepo)

	resp, err := uc.Submit(context.Background(), entity.DirectionIn, dto.SubmitBatchRequest{
		Items: []dto.SubmitLineItemRequest{{ProductID: "P2", Unit: "Caja", Quantity: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Matched)
	assert.True(t, productRepo.quantities["P2"].Equal(decimal.NewFromInt(12)))
}

// TestSubmit_ProductoRepetidoUnaActualizacion verifica que dos líneas del
// mismo producto generan exactamente una operación de incremento.
func TestSubmit_ProductoRepetidoUnaActualizacion(t *testing.T) {
	productRepo := newFakeProductRepo(map[string]decimal.Decimal{"P1": decimal.NewFromInt(20)})
	uc := buildUseCase(newFakeBatchRepo(), &fakeUnitRepo{}, productRepo)

	resp, err := uc.Submit(context.Background(), entity.DirectionOut, dto.SubmitBatchRequest{
		Items: []dto.SubmitLineItemRequest{
			{ProductID: "P1", Quantity: 5},
			{ProductID: "P1", Quantity: 3},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, productRepo.applyOps, "el mismo producto debe conciliarse en una sola operación")
	assert.True(t, productRepo.quantities["P1"].Equal(decimal.NewFromInt(12)))
	assert.Equal(t, int64(1), resp.Matched)
}

// TestSubmit_ProductoInexistente verifica el faltante tolerado: matched y
// modified en cero, sin error, y el lote igual queda en el libro mayor con
// sus líneas originales.
func TestSubmit_ProductoInexistente(t *testing.T) {
	batchRepo := newFakeBatchRepo()
	uc := buildUseCase(batchRepo, &fakeUnitRepo{}, newFakeProductRepo(nil))

	resp, err := uc.Submit(context.Background(), entity.DirectionOut, dto.SubmitBatchRequest{
		Items: []dto.SubmitLineItemRequest{{ProductID: "P9", Quantity: 4}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Matched)
	assert.Equal(t, int64(0), resp.Modified)

	stored, _ := batchRepo.GetByID(resp.BatchID)
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "P9", stored.Items[0].ProductID)
	assert.Equal(t, int64(4), stored.Items[0].Quantity)
}

// TestSubmit_FallaDeTiendaDejaElLibro verifica que una falla inesperada al
// conciliar devuelve error pero el registro de auditoría permanece, sin
// marcar como conciliado.
func TestSubmit_FallaDeTiendaDejaElLibro(t *testing.T) {
	batchRepo := newFakeBatchRepo()
	productRepo := newFakeProductRepo(map[string]decimal.Decimal{"P1": decimal.NewFromInt(9)})
	productRepo.applyErr = errors.New("conexión perdida")
	uc := buildUseCase(batchRepo, &fakeUnitRepo{}, productRepo)

	_, err := uc.Submit(context.Background(), entity.DirectionOut, dto.SubmitBatchRequest{
		Items: []dto.SubmitLineItemRequest{{ProductID: "P1", Quantity: 2}},
	})

	require.Error(t, err)
	require.Len(t, batchRepo.batches, 1, "la pista de auditoría debe sobrevivir a la falla")
	for id := range batchRepo.batches {
		stored, _ := batchRepo.GetByID(id)
		assert.False(t, stored.Reconciled, "la bandera debe quedar en false para el job de reparación")
	}
}

// TestSubmit_FallaDelLibroAborta verifica que si el insert del libro mayor
// falla, no se toca ninguna existencia.
func TestSubmit_FallaDelLibroAborta(t *testing.T) {
	batchRepo := newFakeBatchRepo()
	batchRepo.createErr = errors.New("tienda no disponible")
	productRepo := newFakeProductRepo(map[string]decimal.Decimal{"P1": decimal.NewFromInt(9)})
	uc := buildUseCase(batchRepo, &fakeUnitRepo{}, productRepo)

	_, err := uc.Submit(context.Background(), entity.DirectionIn, dto.SubmitBatchRequest{
		Items: []dto.SubmitLineItemRequest{{ProductID: "P1", Quantity: 2}},
	})

	require.Error(t, err)
	assert.Equal(t, 0, productRepo.applyOps)
	assert.True(t, productRepo.quantities["P1"].Equal(decimal.NewFromInt(9)))
}
