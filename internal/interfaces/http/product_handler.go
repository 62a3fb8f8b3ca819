package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/api"
)

// ProductHandler reenvía /products y /units al backend (protegido, ManageProducts).
type ProductHandler struct {
	products *api.ProductsAPI
	units    *api.UnitsAPI
}

// NewProductHandler construye el handler.
func NewProductHandler(client *api.Client) *ProductHandler {
	return &ProductHandler{products: client.Products, units: client.Units}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Límite"
// @Param        search     query  string  false  "Texto a buscar"
// @Param        category   query  string  false  "Categoría"
// @Param        is_active  query  bool    false  "Solo activos/inactivos"
// @Success      200  {object}  dto.Paginated[entity.Product]
// @Router       /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := dto.ProductFilters{
		PageRequest: pageRequest(c),
		Search:      c.Query("search"),
		Category:    c.Query("category"),
	}
	if raw := c.Query("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "is_active debe ser true o false")
		}
		f.IsActive = &v
	}
	out, err := h.products.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar productos
// @Tags         products
// @Produce      json
// @Param        q  query  string  true  "Texto a buscar"
// @Router       /products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return badRequest(c, "VALIDATION", "q es requerido")
	}
	out, err := h.products.Search(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.products.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Router       /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.SKU == "" || in.Name == "" {
		return badRequest(c, "VALIDATION", "sku y name son requeridos")
	}
	out, err := h.products.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (parcial)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Router       /products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.products.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUnits godoc
// @Summary      Listar unidades de medida
// @Tags         units
// @Router       /units [get]
func (h *ProductHandler) ListUnits(c *fiber.Ctx) error {
	out, err := h.units.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateUnit godoc
// @Summary      Crear unidad de medida
// @Tags         units
// @Param        body  body  dto.UnitRequest  true  "Unidad"
// @Router       /units [post]
func (h *ProductHandler) CreateUnit(c *fiber.Ctx) error {
	var in dto.UnitRequest
	if code, msg := parseUnit(c, &in); code != "" {
		return badRequest(c, code, msg)
	}
	out, err := h.units.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateUnit godoc
// @Summary      Reemplazar unidad de medida
// @Tags         units
// @Param        id    path  string           true  "ID de la unidad"
// @Param        body  body  dto.UnitRequest  true  "Unidad"
// @Router       /units/{id} [put]
func (h *ProductHandler) UpdateUnit(c *fiber.Ctx) error {
	var in dto.UnitRequest
	if code, msg := parseUnit(c, &in); code != "" {
		return badRequest(c, code, msg)
	}
	out, err := h.units.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteUnit godoc
// @Summary      Eliminar unidad de medida
// @Tags         units
// @Param        id  path  string  true  "ID de la unidad"
// @Router       /units/{id} [delete]
func (h *ProductHandler) DeleteUnit(c *fiber.Ctx) error {
	if err := h.units.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseUnit devuelve código y mensaje de error, o "" si el body es válido.
func parseUnit(c *fiber.Ctx, in *dto.UnitRequest) (code, msg string) {
	if err := c.BodyParser(in); err != nil {
		return "INVALID_BODY", "cuerpo inválido"
	}
	if in.Name == "" || in.Abbreviation == "" {
		return "VALIDATION", "name y abbreviation son requeridos"
	}
	return "", ""
}

func pageRequest(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Page: c.QueryInt("page", 0), Limit: c.QueryInt("limit", 0)}
}
