package dto

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// MovementRequest body para POST /inventory/add y /inventory/reduce.
type MovementRequest struct {
	ProductID string          `json:"product_id"`
	BatchID   string          `json:"batch_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
}

// InventoryFilters filtros de GET /inventory.
type InventoryFilters struct {
	PageRequest
	Search string `query:"search"`
}

// Query codifica los filtros.
func (f InventoryFilters) Query() url.Values {
	q := url.Values{}
	f.PageRequest.encode(q)
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// LogFilters filtros de GET /inventory/logs.
type LogFilters struct {
	PageRequest
	ProductID string `query:"product_id"`
	BatchID   string `query:"batch_id"`
}

// Query codifica los filtros.
func (f LogFilters) Query() url.Values {
	q := url.Values{}
	f.PageRequest.encode(q)
	if f.ProductID != "" {
		q.Set("product_id", f.ProductID)
	}
	if f.BatchID != "" {
		q.Set("batch_id", f.BatchID)
	}
	return q
}

// InventoryDetails existencias con datos de producto y lote (GET /inventory/product/:id).
type InventoryDetails struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	BatchID     string          `json:"batch_id"`
	BatchNumber string          `json:"batch_number"`
	Quantity    decimal.Decimal `json:"quantity"`
	ExpiryDate  string          `json:"expiry_date"`
	Cost        decimal.Decimal `json:"cost"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// CreateBatchRequest entrada para POST /batches.
type CreateBatchRequest struct {
	ProductID   string          `json:"product_id"`
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  string          `json:"expiry_date"`
	Cost        decimal.Decimal `json:"cost"`
}

// UpdateBatchRequest entrada para PUT /batches/:id.
type UpdateBatchRequest struct {
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  string          `json:"expiry_date"`
	Cost        decimal.Decimal `json:"cost"`
}
