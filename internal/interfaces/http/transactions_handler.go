package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TransactionsHandler consultas de solo lectura del log (protegido).
type TransactionsHandler struct {
	uc *usecase.TransactionsUseCase
}

// NewTransactionsHandler construye el handler.
func NewTransactionsHandler(uc *usecase.TransactionsUseCase) *TransactionsHandler {
	return &TransactionsHandler{uc: uc}
}

func toTransactionResponse(tx *entity.InventoryTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:             tx.ID,
		ComponentID:    tx.ComponentID,
		FromLocationID: tx.FromLocationID,
		ToLocationID:   tx.ToLocationID,
		Quantity:       tx.Quantity,
		Type:           tx.Type,
		Notes:          tx.Notes,
		CreatedAt:      tx.CreatedAt,
		CreatedBy:      tx.CreatedBy,
	}
}

// GetByID godoc
// @Summary      Obtener transacción por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Transaction ID (UUID)"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionsHandler) GetByID(c *fiber.Ctx) error {
	tx, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(tx)
}

// ListRecent godoc
// @Summary      Últimas transacciones del log
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de registros (default 20)"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions [get]
func (h *TransactionsHandler) ListRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	list, err := h.uc.ListRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "transactions": list})
}

// ListByComponent godoc
// @Summary      Historial de transacciones de un componente
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "Component ID (UUID)"
// @Param        from   query  string  false  "fecha inicial (RFC 3339)"
// @Param        to     query  string  false  "fecha final (RFC 3339)"
// @Param        limit  query  int     false  "tamaño de página"
// @Param        offset query  int     false  "desplazamiento"
// @Success      200  {array}  dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/components/{id}/transactions [get]
func (h *TransactionsHandler) ListByComponent(c *fiber.Ctx) error {
	componentID := c.Params("id")

	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido: usar RFC 3339"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido: usar RFC 3339"})
		}
		to = &t
	}

	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	list, err := h.uc.ListByComponent(componentID, from, to, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "transactions": list})
}
