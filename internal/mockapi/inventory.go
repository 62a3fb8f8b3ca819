package mockapi

import (
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// ── existencias ───────────────────────────────────────────────────────────────

func (s *Server) listInventory(c *fiber.Ctx) error {
	tenant := tenantOf(c)
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	s.mu.Lock()
	out := []dto.InventoryDetails{}
	for _, inv := range s.stock {
		if inv.TenantID != tenant {
			continue
		}
		d, found := s.detailsLocked(inv)
		if !found {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(d.ProductName), search) &&
			!strings.Contains(strings.ToLower(d.ProductSKU), search) {
			continue
		}
		out = append(out, d)
	}
	s.mu.Unlock()

	sortDetails(out)
	return paginated(c, out, pageOf(c))
}

func (s *Server) inventoryByProduct(c *fiber.Ctx) error {
	tenant := tenantOf(c)
	s.mu.Lock()
	if _, found := s.productLocked(tenant, c.Params("id")); !found {
		s.mu.Unlock()
		return fail(c, fiber.StatusNotFound, "not_found", "product not found")
	}
	out := []dto.InventoryDetails{}
	for _, inv := range s.stock {
		if inv.TenantID != tenant || inv.ProductID != c.Params("id") {
			continue
		}
		if d, found := s.detailsLocked(inv); found {
			out = append(out, d)
		}
	}
	s.mu.Unlock()

	sortDetails(out)
	return ok(c, fiber.StatusOK, out)
}

func (s *Server) inventoryLogs(c *fiber.Ctx) error {
	tenant := tenantOf(c)
	productID, batchID := c.Query("product_id"), c.Query("batch_id")

	s.mu.Lock()
	out := []entity.InventoryLog{}
	for i := len(s.logs) - 1; i >= 0; i-- {
		l := s.logs[i]
		if l.TenantID != tenant {
			continue
		}
		if productID != "" && l.ProductID != productID {
			continue
		}
		if batchID != "" && l.BatchID != batchID {
			continue
		}
		out = append(out, l)
	}
	s.mu.Unlock()
	return paginated(c, out, pageOf(c))
}

func (s *Server) addStock(c *fiber.Ctx) error {
	return s.move(c, entity.TransactionAdd)
}

func (s *Server) reduceStock(c *fiber.Ctx) error {
	return s.move(c, entity.TransactionReduce)
}

// move aplica un movimiento sobre el lote y registra el log.
func (s *Server) move(c *fiber.Ctx, kind string) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid_body", "invalid request body")
	}
	if in.ProductID == "" || in.BatchID == "" || !in.Quantity.IsPositive() {
		return fail(c, fiber.StatusBadRequest, "validation", "product_id, batch_id and a positive quantity are required")
	}
	tenant := tenantOf(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.productLocked(tenant, in.ProductID)
	if !found {
		return fail(c, fiber.StatusNotFound, "not_found", "product not found")
	}
	b, found := s.batches[in.BatchID]
	if !found || b.TenantID != tenant || b.ProductID != p.ID {
		return fail(c, fiber.StatusNotFound, "not_found", "batch not found")
	}

	now := s.now()
	inv, found := s.stock[b.ID]
	if !found {
		inv = &entity.Inventory{
			ID:        uuid.NewString(),
			TenantID:  tenant,
			ProductID: p.ID,
			BatchID:   b.ID,
			Quantity:  decimal.Zero,
			CreatedAt: now,
		}
	}

	change := in.Quantity
	if kind == entity.TransactionReduce {
		if inv.Quantity.LessThan(in.Quantity) {
			return fail(c, fiber.StatusUnprocessableEntity, "insufficient_stock", "insufficient stock in batch")
		}
		change = in.Quantity.Neg()
	}
	inv.Quantity = inv.Quantity.Add(change)
	inv.UpdatedAt = now
	s.stock[b.ID] = inv

	s.logs = append(s.logs, entity.InventoryLog{
		ID:              uuid.NewString(),
		TenantID:        tenant,
		ProductID:       p.ID,
		ProductName:     p.Name,
		BatchID:         b.ID,
		BatchNumber:     b.BatchNumber,
		ReferenceID:     claimsOf(c).UserID,
		TransactionType: kind,
		QuantityChange:  change,
		Notes:           in.Notes,
		CreatedAt:       now,
	})
	return ok(c, fiber.StatusOK, *inv)
}

// ── lotes ─────────────────────────────────────────────────────────────────────

func (s *Server) createBatch(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid_body", "invalid request body")
	}
	if in.ProductID == "" || strings.TrimSpace(in.BatchNumber) == "" {
		return fail(c, fiber.StatusBadRequest, "validation", "product_id and batch_number are required")
	}
	if !validDate(in.ExpiryDate) {
		return fail(c, fiber.StatusBadRequest, "validation", "expiry_date must be YYYY-MM-DD")
	}
	tenant := tenantOf(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.productLocked(tenant, in.ProductID); !found {
		return fail(c, fiber.StatusNotFound, "not_found", "product not found")
	}
	now := s.now()
	b := &entity.Batch{
		ID:          uuid.NewString(),
		TenantID:    tenant,
		ProductID:   in.ProductID,
		BatchNumber: in.BatchNumber,
		ExpiryDate:  in.ExpiryDate,
		Cost:        in.Cost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.batches[b.ID] = b
	return ok(c, fiber.StatusCreated, *b)
}

func (s *Server) getBatch(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, found := s.batches[c.Params("id")]
	if !found || b.TenantID != tenantOf(c) {
		return fail(c, fiber.StatusNotFound, "not_found", "batch not found")
	}
	return ok(c, fiber.StatusOK, *b)
}

func (s *Server) updateBatch(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid_body", "invalid request body")
	}
	if strings.TrimSpace(in.BatchNumber) == "" || !validDate(in.ExpiryDate) {
		return fail(c, fiber.StatusBadRequest, "validation", "batch_number and expiry_date (YYYY-MM-DD) are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, found := s.batches[c.Params("id")]
	if !found || b.TenantID != tenantOf(c) {
		return fail(c, fiber.StatusNotFound, "not_found", "batch not found")
	}
	b.BatchNumber = in.BatchNumber
	b.ExpiryDate = in.ExpiryDate
	b.Cost = in.Cost
	b.UpdatedAt = s.now()
	return ok(c, fiber.StatusOK, *b)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *Server) detailsLocked(inv *entity.Inventory) (dto.InventoryDetails, bool) {
	p, pOK := s.products[inv.ProductID]
	b, bOK := s.batches[inv.BatchID]
	if !pOK || !bOK {
		return dto.InventoryDetails{}, false
	}
	return dto.InventoryDetails{
		ProductID:   p.ID,
		ProductName: p.Name,
		ProductSKU:  p.SKU,
		BatchID:     b.ID,
		BatchNumber: b.BatchNumber,
		Quantity:    inv.Quantity,
		ExpiryDate:  b.ExpiryDate,
		Cost:        b.Cost,
		TotalValue:  inv.Quantity.Mul(b.Cost),
	}, true
}

func sortDetails(ds []dto.InventoryDetails) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].ProductName != ds[j].ProductName {
			return ds[i].ProductName < ds[j].ProductName
		}
		return ds[i].ExpiryDate < ds[j].ExpiryDate
	})
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
