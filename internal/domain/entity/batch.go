package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch lote de un producto con fecha de vencimiento y costo de adquisición.
type Batch struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	ProductID   string          `json:"product_id"`
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  string          `json:"expiry_date"` // YYYY-MM-DD
	Cost        decimal.Decimal `json:"cost"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
