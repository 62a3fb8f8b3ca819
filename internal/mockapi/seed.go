package mockapi

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
)

// Cuentas de demo creadas por Seed.
const (
	DemoAdminEmail      = "admin@invorya.dev"
	DemoAdminPassword   = "admin123"
	DemoManagerEmail    = "manager@invorya.dev"
	DemoManagerPassword = "manager123"
	DemoUserEmail       = "user@invorya.dev"
	DemoUserPassword    = "user123"
)

// Demo identificadores generados por Seed.
type Demo struct {
	TenantID string
	Products map[string]string // SKU → ID
	Batches  map[string]string // número de lote → ID
}

type seedProduct struct {
	name, sku, category, unit string
	min, reorder              int
	cost, price               int64
}

type seedBatch struct {
	sku, number string
	expiresIn   int // días desde hoy
	cost        int64
	quantity    int64
}

var (
	seedUnits = []struct{ name, abbr string }{
		{"Unidad", "und"},
		{"Kilogramo", "kg"},
		{"Caja", "caja"},
	}
	seedProducts = []seedProduct{
		{"Arroz Diana 500g", "ARZ-500", "Granos", "und", 20, 30, 1800, 2600},
		{"Aceite Premier 1L", "ACE-1L", "Aceites", "und", 12, 20, 9500, 12900},
		{"Leche Alpina 1L", "LEC-1L", "Lácteos", "und", 24, 36, 3200, 4300},
		{"Café Sello Rojo 250g", "CAF-250", "Bebidas", "und", 10, 15, 8700, 11500},
		{"Azúcar Manuelita 1kg", "AZU-1K", "Granos", "kg", 15, 25, 3900, 5200},
		{"Panela 500g", "PAN-500", "Endulzantes", "und", 10, 20, 2100, 3000},
	}
	seedBatches = []seedBatch{
		{"ARZ-500", "L-ARZ-01", 180, 1800, 4},
		{"ACE-1L", "L-ACE-01", 20, 9500, 8},
		{"LEC-1L", "L-LEC-07", 5, 3200, 60},
		{"CAF-250", "L-CAF-02", 90, 8700, 35},
		{"PAN-500", "L-PAN-01", 60, 2100, 10},
		{"PAN-500", "L-PAN-02", 120, 2150, 15},
	}
)

// Seed crea un tenant de demo con tres usuarios (admin, manager, user),
// unidades, productos, lotes y existencias.
func (s *Server) Seed() (Demo, error) {
	demo := Demo{
		TenantID: uuid.NewString(),
		Products: make(map[string]string),
		Batches:  make(map[string]string),
	}
	users := []struct {
		email, password, first, last string
		role                         entity.Role
	}{
		{DemoAdminEmail, DemoAdminPassword, "Laura", "Gómez", entity.RoleAdmin},
		{DemoManagerEmail, DemoManagerPassword, "Andrés", "Pérez", entity.RoleManager},
		{DemoUserEmail, DemoUserPassword, "Camila", "Rojas", entity.RoleUser},
	}
	for _, u := range users {
		if _, err := s.AddUser(u.email, u.password, u.first, u.last, u.role, demo.TenantID); err != nil {
			return Demo{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()

	unitIDs := make(map[string]string, len(seedUnits))
	for _, u := range seedUnits {
		unit := &entity.ProductUnit{
			ID:           uuid.NewString(),
			TenantID:     demo.TenantID,
			Name:         u.name,
			Abbreviation: u.abbr,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		s.units[unit.ID] = unit
		unitIDs[u.abbr] = unit.ID
	}

	for _, sp := range seedProducts {
		p := &entity.Product{
			ID:            uuid.NewString(),
			TenantID:      demo.TenantID,
			Name:          sp.name,
			SKU:           sp.sku,
			Category:      sp.category,
			UnitID:        unitIDs[sp.unit],
			MinStockLevel: sp.min,
			MaxStockLevel: sp.reorder * 10,
			ReorderPoint:  sp.reorder,
			CostPrice:     decimal.NewFromInt(sp.cost),
			SellingPrice:  decimal.NewFromInt(sp.price),
			TaxRate:       decimal.NewFromInt(19),
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		s.products[p.ID] = p
		demo.Products[sp.sku] = p.ID
	}

	for _, sb := range seedBatches {
		productID, found := demo.Products[sb.sku]
		if !found {
			return Demo{}, fmt.Errorf("mockapi: seed: producto %s inexistente", sb.sku)
		}
		b := &entity.Batch{
			ID:          uuid.NewString(),
			TenantID:    demo.TenantID,
			ProductID:   productID,
			BatchNumber: sb.number,
			ExpiryDate:  truncateDay(now).AddDate(0, 0, sb.expiresIn).Format(dateLayout),
			Cost:        decimal.NewFromInt(sb.cost),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		s.batches[b.ID] = b
		demo.Batches[sb.number] = b.ID

		qty := decimal.NewFromInt(sb.quantity)
		s.stock[b.ID] = &entity.Inventory{
			ID:        uuid.NewString(),
			TenantID:  demo.TenantID,
			ProductID: productID,
			BatchID:   b.ID,
			Quantity:  qty,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.logs = append(s.logs, entity.InventoryLog{
			ID:              uuid.NewString(),
			TenantID:        demo.TenantID,
			ProductID:       productID,
			ProductName:     s.products[productID].Name,
			BatchID:         b.ID,
			BatchNumber:     b.BatchNumber,
			TransactionType: entity.TransactionAdd,
			QuantityChange:  qty,
			Notes:           "carga inicial",
			CreatedAt:       now,
		})
	}

	s.log.Info().
		Str("tenant_id", demo.TenantID).
		Int("products", len(demo.Products)).
		Int("batches", len(demo.Batches)).
		Msg("datos de demo cargados")
	return demo, nil
}
