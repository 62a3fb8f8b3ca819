package dto

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	UnitID        string          `json:"unit_id"`
	MinStockLevel int             `json:"min_stock_level"`
	MaxStockLevel int             `json:"max_stock_level"`
	ReorderPoint  int             `json:"reorder_point"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
}

// UpdateProductRequest actualización parcial (PATCH); solo viajan los campos no nulos.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	SKU           *string          `json:"sku,omitempty"`
	Category      *string          `json:"category,omitempty"`
	UnitID        *string          `json:"unit_id,omitempty"`
	MinStockLevel *int             `json:"min_stock_level,omitempty"`
	MaxStockLevel *int             `json:"max_stock_level,omitempty"`
	ReorderPoint  *int             `json:"reorder_point,omitempty"`
	CostPrice     *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice  *decimal.Decimal `json:"selling_price,omitempty"`
	TaxRate       *decimal.Decimal `json:"tax_rate,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// ProductFilters filtros de GET /products.
type ProductFilters struct {
	PageRequest
	Search   string `query:"search"`
	Category string `query:"category"`
	IsActive *bool  `query:"is_active"`
}

// Query codifica los filtros como query string (solo los presentes).
func (f ProductFilters) Query() url.Values {
	q := url.Values{}
	f.PageRequest.encode(q)
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.IsActive != nil {
		q.Set("is_active", strconv.FormatBool(*f.IsActive))
	}
	return q
}

// UnitRequest entrada para crear o reemplazar una unidad.
type UnitRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}
