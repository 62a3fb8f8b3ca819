package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/api"
)

// InventoryHandler reenvía /inventory y /batches al backend (protegido, ManageInventory).
type InventoryHandler struct {
	inventory *api.InventoryAPI
	batches   *api.BatchesAPI
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(client *api.Client) *InventoryHandler {
	return &InventoryHandler{inventory: client.Inventory, batches: client.Batches}
}

// List godoc
// @Summary      Existencias por producto y lote
// @Tags         inventory
// @Produce      json
// @Param        page    query  int     false  "Página"
// @Param        limit   query  int     false  "Límite"
// @Param        search  query  string  false  "Texto a buscar"
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.inventory.List(c.UserContext(), dto.InventoryFilters{
		PageRequest: pageRequest(c),
		Search:      c.Query("search"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByProduct godoc
// @Summary      Existencias de un producto
// @Tags         inventory
// @Param        id  path  string  true  "ID del producto"
// @Router       /inventory/product/{id} [get]
func (h *InventoryHandler) GetByProduct(c *fiber.Ctx) error {
	out, err := h.inventory.GetByProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        batch_id    query  string  false  "Filtrar por lote"
// @Router       /inventory/logs [get]
func (h *InventoryHandler) Logs(c *fiber.Ctx) error {
	out, err := h.inventory.Logs(c.UserContext(), dto.LogFilters{
		PageRequest: pageRequest(c),
		ProductID:   c.Query("product_id"),
		BatchID:     c.Query("batch_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Entrada de inventario
// @Tags         inventory
// @Param        body  body  dto.MovementRequest  true  "Movimiento"
// @Router       /inventory/add [post]
func (h *InventoryHandler) Add(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if code, msg := parseMovement(c, &in); code != "" {
		return badRequest(c, code, msg)
	}
	out, err := h.inventory.Add(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reduce godoc
// @Summary      Salida de inventario
// @Tags         inventory
// @Param        body  body  dto.MovementRequest  true  "Movimiento"
// @Router       /inventory/reduce [post]
func (h *InventoryHandler) Reduce(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if code, msg := parseMovement(c, &in); code != "" {
		return badRequest(c, code, msg)
	}
	out, err := h.inventory.Reduce(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateBatch godoc
// @Summary      Crear lote
// @Tags         batches
// @Param        body  body  dto.CreateBatchRequest  true  "Lote"
// @Router       /batches [post]
func (h *InventoryHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID == "" || in.BatchNumber == "" {
		return badRequest(c, "VALIDATION", "product_id y batch_number son requeridos")
	}
	out, err := h.batches.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBatch godoc
// @Summary      Obtener lote
// @Tags         batches
// @Param        id  path  string  true  "ID del lote"
// @Router       /batches/{id} [get]
func (h *InventoryHandler) GetBatch(c *fiber.Ctx) error {
	out, err := h.batches.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateBatch godoc
// @Summary      Reemplazar lote
// @Tags         batches
// @Param        id    path  string                  true  "ID del lote"
// @Param        body  body  dto.UpdateBatchRequest  true  "Lote"
// @Router       /batches/{id} [put]
func (h *InventoryHandler) UpdateBatch(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.batches.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func parseMovement(c *fiber.Ctx, in *dto.MovementRequest) (code, msg string) {
	if err := c.BodyParser(in); err != nil {
		return "INVALID_BODY", "cuerpo inválido"
	}
	if in.ProductID == "" || in.BatchID == "" {
		return "VALIDATION", "product_id y batch_id son requeridos"
	}
	if !in.Quantity.IsPositive() {
		return "VALIDATION", "quantity debe ser mayor que cero"
	}
	return "", ""
}
