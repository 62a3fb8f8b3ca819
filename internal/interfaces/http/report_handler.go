package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/api"
)

// ReportHandler reenvía /reports/* al backend (protegido, ViewReports).
type ReportHandler struct {
	reports *api.ReportsAPI
}

// NewReportHandler construye el handler.
func NewReportHandler(client *api.Client) *ReportHandler {
	return &ReportHandler{reports: client.Reports}
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         reports
// @Param        threshold  query  int  false  "Umbral"
// @Router       /reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.reports.LowStock(c.UserContext(), c.QueryInt("threshold", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExpiringBatches godoc
// @Summary      Lotes por vencer
// @Tags         reports
// @Param        days  query  int  false  "Ventana en días"
// @Router       /reports/expiring-batches [get]
func (h *ReportHandler) ExpiringBatches(c *fiber.Ctx) error {
	out, err := h.reports.ExpiringBatches(c.UserContext(), c.QueryInt("days", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// InventoryValue godoc
// @Summary      Valorización del inventario
// @Tags         reports
// @Router       /reports/inventory-value [get]
func (h *ReportHandler) InventoryValue(c *fiber.Ctx) error {
	out, err := h.reports.InventoryValue(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
