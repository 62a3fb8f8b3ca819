package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats respuesta de GET /reports/dashboard-stats.
type DashboardStats struct {
	TotalProducts   int             `json:"total_products"`
	LowStockCount   int             `json:"low_stock_count"`
	TotalValue      decimal.Decimal `json:"total_value"`
	ExpiringBatches int             `json:"expiring_batches"`
}

// LowStockItem producto por debajo de su nivel mínimo.
type LowStockItem struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductSKU      string          `json:"product_sku"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	MinStockLevel   int             `json:"min_stock_level"`
	ReorderPoint    int             `json:"reorder_point"`
}

// ExpiringBatch lote próximo a vencer.
type ExpiringBatch struct {
	BatchID         string          `json:"batch_id"`
	BatchNumber     string          `json:"batch_number"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductSKU      string          `json:"product_sku"`
	ExpiryDate      string          `json:"expiry_date"`
	Quantity        decimal.Decimal `json:"quantity"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
}

// InventoryValue valorización total del inventario.
type InventoryValue struct {
	TotalValue    decimal.Decimal `json:"total_value"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	ProductCount  int             `json:"product_count"`
}

// NavigationItem entrada del menú lateral visible para el usuario actual.
type NavigationItem struct {
	Name  string `json:"name"`
	Href  string `json:"href"`
	Badge string `json:"badge,omitempty"`
}

// DashboardView modelo de la vista /dashboard.
// Las secciones que fallaron al cargarse quedan nulas y su error va en Errors.
// LowStock y ExpiringBatches traen solo la vista previa; los *Total el tamaño real.
type DashboardView struct {
	User            UserSummary       `json:"user"`
	Capabilities    map[string]bool   `json:"capabilities"`
	Stats           *DashboardStats   `json:"stats"`
	LowStock        []LowStockItem    `json:"low_stock"`
	LowStockTotal   int               `json:"low_stock_total"`
	ExpiringBatches []ExpiringBatch   `json:"expiring_batches"`
	ExpiringTotal   int               `json:"expiring_total"`
	Navigation      []NavigationItem  `json:"navigation"`
	Errors          map[string]string `json:"errors,omitempty"`
}

// LowStockReport datos del reporte PDF de stock bajo.
type LowStockReport struct {
	GeneratedAt time.Time
	GeneratedBy string
	TenantID    string
	Threshold   int
	Items       []LowStockItem
	Value       *InventoryValue
}

// UserSummary datos del usuario mostrados en el header.
type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
}
