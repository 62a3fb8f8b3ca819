package mockapi

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
)

// ── productos ─────────────────────────────────────────────────────────────────

func (s *Server) listProducts(c *fiber.Ctx) error {
	tenant := tenantOf(c)
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	category := c.Query("category")
	var active *bool
	if raw := c.Query("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "validation", "is_active must be a boolean")
		}
		active = &v
	}

	s.mu.Lock()
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.TenantID != tenant {
			continue
		}
		if search != "" && !matches(p, search) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if active != nil && p.IsActive != *active {
			continue
		}
		out = append(out, s.withUnitLocked(*p))
	}
	s.mu.Unlock()

	sortProducts(out)
	return paginated(c, out, pageOf(c))
}

func (s *Server) searchProducts(c *fiber.Ctx) error {
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if q == "" {
		return fail(c, fiber.StatusBadRequest, "validation", "query parameter q is required")
	}
	tenant := tenantOf(c)
	s.mu.Lock()
	out := []entity.Product{}
	for _, p := range s.products {
		if p.TenantID == tenant && matches(p, q) {
			out = append(out, s.withUnitLocked(*p))
		}
	}
	s.mu.Unlock()
	sortProducts(out)
	return ok(c, fiber.StatusOK, out)
}

func (s *Server) getProduct(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.productLocked(tenantOf(c), c.Params("id"))
	if !found {
		return fail(c, fiber.StatusNotFound, "not_found", "product not found")
	}
	return ok(c, fiber.StatusOK, s.withUnitLocked(*p))
}

func (s *Server) createProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid_body", "invalid request body")
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKU) == "" {
		return fail(c, fiber.StatusBadRequest, "validation", "name and sku are required")
	}
	tenant := tenantOf(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.skuTakenLocked(tenant, in.SKU, "") {
		return fail(c, fiber.StatusConflict, "conflict", "sku already exists")
	}
	now := s.now()
	p := &entity.Product{
		ID:            uuid.NewString(),
		TenantID:      tenant,
		Name:          in.Name,
		Description:   in.Description,
		SKU:           in.SKU,
		Category:      in.Category,
		UnitID:        in.UnitID,
		MinStockLevel: in.MinStockLevel,
		MaxStockLevel: in.MaxStockLevel,
		ReorderPoint:  in.ReorderPoint,
		CostPrice:     in.CostPrice,
		SellingPrice:  in.SellingPrice,
		TaxRate:       in.TaxRate,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.products[p.ID] = p
	return ok(c, fiber.StatusCreated, s.withUnitLocked(*p))
}

func (s *Server) updateProduct(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid_body", "invalid request body")
	}
	tenant := tenantOf(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.productLocked(tenant, c.Params("id"))
	if !found {
		return fail(c, fiber.StatusNotFound, "not_found", "product not found")
	}
	if in.SKU != nil && s.skuTakenLocked(tenant, *in.SKU, p.ID) {
		return fail(c, fiber.StatusConflict, "conflict", "sku already exists")
	}
	set(&p.Name, in.Name)
	set(&p.Description, in.Description)
	set(&p.SKU, in.SKU)
	set(&p.Category, in.Category)
	set(&p.UnitID, in.UnitID)
	set(&p.MinStockLevel, in.MinStockLevel)
	set(&p.MaxStockLevel, in.MaxStockLevel)
	set(&p.ReorderPoint, in.ReorderPoint)
	set(&p.CostPrice, in.CostPrice)
	set(&p.SellingPrice, in.SellingPrice)
	set(&p.TaxRate, in.TaxRate)
	set(&p.IsActive, in.IsActive)
	p.UpdatedAt = s.now()
	return ok(c, fiber.StatusOK, s.withUnitLocked(*p))
}

func (s *Server) deleteProduct(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.productLocked(tenantOf(c), c.Params("id"))
	if !found {
		return fail(c, fiber.StatusNotFound, "not_found", "product not found")
	}
	delete(s.products, p.ID)
	return okMessage(c, "product deleted")
}

// ── unidades ──────────────────────────────────────────────────────────────────

func (s *Server) listUnits(c *fiber.Ctx) error {
	tenant := tenantOf(c)
	s.mu.Lock()
	out := []entity.ProductUnit{}
	for _, u := range s.units {
		if u.TenantID == tenant {
			out = append(out, *u)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return ok(c, fiber.StatusOK, out)
}

func (s *Server) createUnit(c *fiber.Ctx) error {
	in, problem := parseUnitBody(c)
	if problem != "" {
		return fail(c, fiber.StatusBadRequest, "validation", problem)
	}
	now := s.now()
	u := &entity.ProductUnit{
		ID:           uuid.NewString(),
		TenantID:     tenantOf(c),
		Name:         in.Name,
		Abbreviation: in.Abbreviation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.mu.Lock()
	s.units[u.ID] = u
	s.mu.Unlock()
	return ok(c, fiber.StatusCreated, u)
}

func (s *Server) updateUnit(c *fiber.Ctx) error {
	in, problem := parseUnitBody(c)
	if problem != "" {
		return fail(c, fiber.StatusBadRequest, "validation", problem)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, found := s.units[c.Params("id")]
	if !found || u.TenantID != tenantOf(c) {
		return fail(c, fiber.StatusNotFound, "not_found", "unit not found")
	}
	u.Name = in.Name
	u.Abbreviation = in.Abbreviation
	u.UpdatedAt = s.now()
	return ok(c, fiber.StatusOK, u)
}

func (s *Server) deleteUnit(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, found := s.units[c.Params("id")]
	if !found || u.TenantID != tenantOf(c) {
		return fail(c, fiber.StatusNotFound, "not_found", "unit not found")
	}
	for _, p := range s.products {
		if p.UnitID == u.ID {
			return fail(c, fiber.StatusConflict, "conflict", "unit is in use")
		}
	}
	delete(s.units, u.ID)
	return okMessage(c, "unit deleted")
}

func parseUnitBody(c *fiber.Ctx) (dto.UnitRequest, string) {
	var in dto.UnitRequest
	if err := c.BodyParser(&in); err != nil {
		return in, "invalid request body"
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Abbreviation) == "" {
		return in, "name and abbreviation are required"
	}
	return in, ""
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *Server) productLocked(tenant, id string) (*entity.Product, bool) {
	p, found := s.products[id]
	if !found || p.TenantID != tenant {
		return nil, false
	}
	return p, true
}

func (s *Server) skuTakenLocked(tenant, sku, except string) bool {
	for _, p := range s.products {
		if p.TenantID == tenant && p.ID != except && strings.EqualFold(p.SKU, sku) {
			return true
		}
	}
	return false
}

func (s *Server) withUnitLocked(p entity.Product) entity.Product {
	if u, found := s.units[p.UnitID]; found {
		p.UnitName = u.Name
	}
	return p
}

func matches(p *entity.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.SKU), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

func sortProducts(ps []entity.Product) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Name < ps[j].Name })
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
