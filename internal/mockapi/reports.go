package mockapi

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
)

func (s *Server) lowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 0)
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}
	s.mu.Lock()
	items := s.lowStockLocked(tenantOf(c), decimal.NewFromInt(int64(threshold)))
	s.mu.Unlock()
	return c.JSON(fiber.Map{"success": true, "data": items, "threshold": threshold})
}

func (s *Server) expiringBatches(c *fiber.Ctx) error {
	days := c.QueryInt("days", 0)
	if days <= 0 {
		days = defaultExpiringDays
	}
	s.mu.Lock()
	items := s.expiringLocked(tenantOf(c), days)
	s.mu.Unlock()
	return ok(c, fiber.StatusOK, items)
}

func (s *Server) inventoryValue(c *fiber.Ctx) error {
	s.mu.Lock()
	v := s.valueLocked(tenantOf(c))
	s.mu.Unlock()
	return ok(c, fiber.StatusOK, v)
}

func (s *Server) dashboardStats(c *fiber.Ctx) error {
	tenant := tenantOf(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, p := range s.products {
		if p.TenantID == tenant {
			total++
		}
	}
	return ok(c, fiber.StatusOK, dto.DashboardStats{
		TotalProducts:   total,
		LowStockCount:   len(s.lowStockLocked(tenant, decimal.NewFromInt(defaultLowStockThreshold))),
		TotalValue:      s.valueLocked(tenant).TotalValue,
		ExpiringBatches: len(s.expiringLocked(tenant, defaultExpiringDays)),
	})
}

// lowStockLocked productos activos cuya existencia total es <= threshold.
func (s *Server) lowStockLocked(tenant string, threshold decimal.Decimal) []dto.LowStockItem {
	qty := make(map[string]decimal.Decimal)
	for _, inv := range s.stock {
		if inv.TenantID == tenant {
			qty[inv.ProductID] = qty[inv.ProductID].Add(inv.Quantity)
		}
	}
	out := []dto.LowStockItem{}
	for _, p := range s.products {
		if p.TenantID != tenant || !p.IsActive {
			continue
		}
		q := qty[p.ID]
		if q.GreaterThan(threshold) {
			continue
		}
		out = append(out, dto.LowStockItem{
			ProductID:       p.ID,
			ProductName:     p.Name,
			ProductSKU:      p.SKU,
			CurrentQuantity: q,
			MinStockLevel:   p.MinStockLevel,
			ReorderPoint:    p.ReorderPoint,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CurrentQuantity.Equal(out[j].CurrentQuantity) {
			return out[i].CurrentQuantity.LessThan(out[j].CurrentQuantity)
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out
}

// expiringLocked lotes que vencen entre hoy y hoy+days.
func (s *Server) expiringLocked(tenant string, days int) []dto.ExpiringBatch {
	today := truncateDay(s.now())
	limit := today.AddDate(0, 0, days)
	out := []dto.ExpiringBatch{}
	for _, b := range s.batches {
		if b.TenantID != tenant {
			continue
		}
		expiry, err := time.ParseInLocation(dateLayout, b.ExpiryDate, today.Location())
		if err != nil || expiry.Before(today) || expiry.After(limit) {
			continue
		}
		item := dto.ExpiringBatch{
			BatchID:         b.ID,
			BatchNumber:     b.BatchNumber,
			ProductID:       b.ProductID,
			ExpiryDate:      b.ExpiryDate,
			Quantity:        decimal.Zero,
			DaysUntilExpiry: int(expiry.Sub(today).Hours() / 24),
		}
		if p, found := s.products[b.ProductID]; found {
			item.ProductName = p.Name
			item.ProductSKU = p.SKU
		}
		if inv, found := s.stock[b.ID]; found {
			item.Quantity = inv.Quantity
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DaysUntilExpiry != out[j].DaysUntilExpiry {
			return out[i].DaysUntilExpiry < out[j].DaysUntilExpiry
		}
		return out[i].BatchNumber < out[j].BatchNumber
	})
	return out
}

func (s *Server) valueLocked(tenant string) dto.InventoryValue {
	v := dto.InventoryValue{TotalValue: decimal.Zero, TotalQuantity: decimal.Zero}
	products := make(map[string]bool)
	for _, inv := range s.stock {
		if inv.TenantID != tenant || !inv.Quantity.IsPositive() {
			continue
		}
		b, found := s.batches[inv.BatchID]
		if !found {
			continue
		}
		v.TotalValue = v.TotalValue.Add(inv.Quantity.Mul(b.Cost))
		v.TotalQuantity = v.TotalQuantity.Add(inv.Quantity)
		products[inv.ProductID] = true
	}
	v.ProductCount = len(products)
	return v
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
