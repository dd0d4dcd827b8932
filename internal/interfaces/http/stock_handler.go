package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stocks"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockHandler maneja el envío de lotes de movimiento y las consultas del
// libro mayor (protegido).
type StockHandler struct {
	submit *stocks.SubmitBatchUseCase
	query  *stocks.BatchQueryUseCase
	docs   *stocks.DocumentUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(submit *stocks.SubmitBatchUseCase, query *stocks.BatchQueryUseCase, docs *stocks.DocumentUseCase) *StockHandler {
	return &StockHandler{submit: submit, query: query, docs: docs}
}

// SubmitIn godoc
// @Summary      Registrar lote de entrada de stock
// @Description  Persiste el lote en el libro de movimientos y concilia las existencias producto por producto.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitBatchRequest  true  "Lote de entrada"
// @Success      201   {object}  dto.SubmitBatchResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stocks/in [post]
func (h *StockHandler) SubmitIn(c *fiber.Ctx) error {
	return h.handleSubmit(c, entity.DirectionIn)
}

// SubmitOut godoc
// @Summary      Registrar lote de salida de stock
// @Description  Persiste el lote en el libro de movimientos, convierte empaques a unidad base y descuenta existencias.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitBatchRequest  true  "Lote de salida"
// @Success      201   {object}  dto.SubmitBatchResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stocks/out [post]
func (h *StockHandler) SubmitOut(c *fiber.Ctx) error {
	return h.handleSubmit(c, entity.DirectionOut)
}

func (h *StockHandler) handleSubmit(c *fiber.Ctx, direction string) error {
	var in dto.SubmitBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.submit.Submit(c.UserContext(), direction, in)
	if err != nil {
		var verr *stocks.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Code: "VALIDATION", Fields: verr.Fields})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBatches godoc
// @Summary      Listar lotes del libro de movimientos
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        direction  query  string  false  "Filtrar por dirección (in|out)"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {array}  dto.BatchResponse
// @Router       /api/stocks/batches [get]
func (h *StockHandler) ListBatches(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.query.List(c.Query("direction"), page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "direction debe ser in o out"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListUnreconciled godoc
// @Summary      Listar lotes pendientes de conciliar
// @Description  Lotes persistidos en el libro cuya conciliación falló o nunca terminó.
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200    {array}  dto.BatchResponse
// @Router       /api/stocks/batches/unreconciled [get]
func (h *StockHandler) ListUnreconciled(c *fiber.Ctx) error {
	out, err := h.query.ListUnreconciled(c.QueryInt("limit", 50))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetBatch godoc
// @Summary      Obtener un lote por ID
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/batches/{id} [get]
func (h *StockHandler) GetBatch(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}

// BatchLabels godoc
// @Summary      Obtener las líneas de un lote para impresión de etiquetas
// @Description  Entrega la lista persistida de líneas; el formato y el render son del consumidor.
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {array}  dto.LabelItemDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/batches/{id}/labels [get]
func (h *StockHandler) BatchLabels(c *fiber.Ctx) error {
	out, err := h.query.LabelItems(c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}

// BatchVoucher godoc
// @Summary      Descargar el comprobante PDF de un lote
// @Tags         stocks
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/batches/{id}/pdf [get]
func (h *StockHandler) BatchVoucher(c *fiber.Ctx) error {
	data, err := h.docs.BatchVoucherPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="lote-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}

// BatchXML godoc
// @Summary      Descargar el XML de intercambio de un lote
// @Tags         stocks
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/batches/{id}/xml [get]
func (h *StockHandler) BatchXML(c *fiber.Ctx) error {
	data, err := h.docs.BatchXML(c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(data)
}

func batchError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
