package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción en el log de inventario.
const (
	TransactionAdd    = "add"
	TransactionReduce = "reduce"
)

// Inventory existencias de un producto en un lote.
type Inventory struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenant_id"`
	ProductID string          `json:"product_id"`
	BatchID   string          `json:"batch_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InventoryLog movimiento registrado sobre un lote.
type InventoryLog struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	BatchID         string          `json:"batch_id"`
	BatchNumber     string          `json:"batch_number,omitempty"`
	ReferenceID     string          `json:"reference_id"`
	TransactionType string          `json:"transaction_type"`
	QuantityChange  decimal.Decimal `json:"quantity_change"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
}
