package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// ItemsHandler lecturas del ledger y administración del umbral mínimo (protegido).
type ItemsHandler struct {
	uc *usecase.ItemsUseCase
}

// NewItemsHandler construye el handler.
func NewItemsHandler(uc *usecase.ItemsUseCase) *ItemsHandler {
	return &ItemsHandler{uc: uc}
}

// Get godoc
// @Summary      Fila actual del ledger para (componente, ubicación)
// @Description  Una fila ausente se devuelve con quantity 0: ausencia significa
//
//	stock cero, no error.
//
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        component_id  query  string  true  "Component ID (UUID)"
// @Param        location_id   query  string  true  "Location ID (UUID)"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Query("component_id"), c.Query("location_id"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "component_id y location_id son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByLocation godoc
// @Summary      Filas del ledger en una ubicación
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Location ID (UUID)"
// @Param        limit   query  int     false  "tamaño de página (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/items [get]
func (h *ItemsHandler) ListByLocation(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	list, err := h.uc.ListByLocation(c.Params("id"), page)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "items": list})
}

// SetMinStock godoc
// @Summary      Fijar umbral mínimo del par (componente, ubicación)
// @Description  Solo ajusta el umbral; la cantidad la muta únicamente el motor.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MinStockRequest  true  "component_id, location_id, min_stock_level"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/min-stock [put]
func (h *ItemsHandler) SetMinStock(c *fiber.Ctx) error {
	var in dto.MinStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetMinStock(in); err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "umbral actualizado"})
}
