package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-dashboard/internal/application/dashboard"
)

// DashboardHandler vista principal y reporte PDF de stock bajo.
type DashboardHandler struct {
	uc *dashboard.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Overview godoc
// @Summary      Vista del dashboard (stats, stock bajo, lotes por vencer, navegación)
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardView
// @Success      202  {object}  map[string]string
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	view, err := h.uc.Overview(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

// LowStockPDF godoc
// @Summary      Reporte PDF de productos con stock bajo
// @Tags         reports
// @Produce      application/pdf
// @Param        threshold  query  int  false  "Umbral (0 = por defecto del backend)"
// @Success      200
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /reports/low-stock.pdf [get]
func (h *DashboardHandler) LowStockPDF(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 0)
	if threshold < 0 {
		return badRequest(c, "VALIDATION", "threshold no puede ser negativo")
	}
	doc, err := h.uc.LowStockPDF(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="stock-bajo-%s.pdf"`, c.Context().Time().Format("20060102")))
	return c.Send(doc)
}
