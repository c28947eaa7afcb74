package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ingest"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// LedgerHandler maneja las cuatro operaciones del motor, el lote de ingestión
// y la verificación por replay (protegido).
type LedgerHandler struct {
	engine   *ledger.Engine
	bulk     *ingest.BulkUseCase
	verifier *ledger.Verifier
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(engine *ledger.Engine, bulk *ingest.BulkUseCase, verifier *ledger.Verifier) *LedgerHandler {
	return &LedgerHandler{engine: engine, bulk: bulk, verifier: verifier}
}

// mapEngineError traduce los errores del motor a respuestas HTTP.
func mapEngineError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "componente o ubicación no encontrado"})
	case domain.ErrInsufficientQuantity:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_QUANTITY", Message: "cantidad insuficiente en la ubicación"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// AddStock godoc
// @Summary      Entrada de stock
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "component_id, location_id, quantity"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/add [post]
func (h *LedgerHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.engine.AddStock(c.Context(), ledger.AddInput{
		ComponentID: in.ComponentID,
		LocationID:  in.LocationID,
		Quantity:    in.Quantity,
		Notes:       in.Notes,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
}

// RemoveStock godoc
// @Summary      Salida de stock
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RemoveStockRequest  true  "component_id, location_id, quantity"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/remove [post]
func (h *LedgerHandler) RemoveStock(c *fiber.Ctx) error {
	var in dto.RemoveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.engine.RemoveStock(c.Context(), ledger.RemoveInput{
		ComponentID: in.ComponentID,
		LocationID:  in.LocationID,
		Quantity:    in.Quantity,
		Notes:       in.Notes,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
}

// Consume godoc
// @Summary      Consumo en producción
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeRequest  true  "component_id, location_id, quantity"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/consume [post]
func (h *LedgerHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.engine.Consume(c.Context(), ledger.ConsumeInput{
		ComponentID: in.ComponentID,
		LocationID:  in.LocationID,
		Quantity:    in.Quantity,
		Notes:       in.Notes,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
}

// Transfer godoc
// @Summary      Transferencia entre ubicaciones
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "component_id, from_location_id, to_location_id, quantity"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/transfer [post]
func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.engine.Transfer(c.Context(), ledger.TransferInput{
		ComponentID:    in.ComponentID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Notes:          in.Notes,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
}

// BulkIngest godoc
// @Summary      Aplicar lote de deltas (ingestión Excel/CSV ya parseada)
// @Description  Cada fila se convierte en un add o remove del motor; las filas
//
//	fallidas no abortan el lote y se reportan por índice.
//
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkIngestRequest  true  "rows"
// @Success      200   {object}  dto.BulkIngestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ledger/bulk [post]
func (h *LedgerHandler) BulkIngest(c *fiber.Ctx) error {
	var in dto.BulkIngestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el lote no tiene filas"})
	}
	out, err := h.bulk.Apply(c.Context(), GetUserID(c), in.Rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificación por replay del log
// @Description  Reconstruye el snapshot aplicando el log completo y lo compara
//
//	con las filas actuales del ledger.
//
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  ledger.VerifyResult
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ledger/verify [get]
func (h *LedgerHandler) Verify(c *fiber.Ctx) error {
	result, err := h.verifier.Verify(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}
