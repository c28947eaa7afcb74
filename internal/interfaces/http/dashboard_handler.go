package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
)

// DashboardHandler vistas agregadas del ledger (protegido).
type DashboardHandler struct {
	agg *reports.Aggregator
	pdf *reports.PDFUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(agg *reports.Aggregator, pdf *reports.PDFUseCase) *DashboardHandler {
	return &DashboardHandler{agg: agg, pdf: pdf}
}

// Stats godoc
// @Summary      Totales del dashboard
// @Description  Componentes activos, total en Main, total en Line y número de
//
//	alertas de stock bajo. Calculado en fresco, sin caché.
//
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.agg.DashboardStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Pares (componente, ubicación) bajo su mínimo
// @Description  Mayor déficit primero; desempate por número de componente.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/low-stock [get]
func (h *DashboardHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.agg.LowStockItems(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "items": list})
}

// Recent godoc
// @Summary      Actividad reciente del ledger
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de registros (default 20)"
// @Success      200  {array}  dto.RecentTransactionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/recent [get]
func (h *DashboardHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	list, err := h.agg.RecentTransactions(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "transactions": list})
}

// LowStockPDF godoc
// @Summary      Reporte de stock bajo en PDF
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/low-stock/pdf [get]
func (h *DashboardHandler) LowStockPDF(c *fiber.Ctx) error {
	data, err := h.pdf.LowStockReportPDF(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := fmt.Sprintf("stock-bajo-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
