package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
)

// ReportsAPI endpoints /reports/*.
type ReportsAPI struct{ d Doer }

// LowStock threshold <= 0 deja el umbral por defecto del servidor.
func (r *ReportsAPI) LowStock(ctx context.Context, threshold int) (*dto.Envelope[[]dto.LowStockItem], error) {
	return call[dto.Envelope[[]dto.LowStockItem]](ctx, r.d, http.MethodGet, "/reports/low-stock", positive("threshold", threshold), nil)
}

// ExpiringBatches days <= 0 deja la ventana por defecto del servidor.
func (r *ReportsAPI) ExpiringBatches(ctx context.Context, days int) (*dto.Envelope[[]dto.ExpiringBatch], error) {
	return call[dto.Envelope[[]dto.ExpiringBatch]](ctx, r.d, http.MethodGet, "/reports/expiring-batches", positive("days", days), nil)
}

func (r *ReportsAPI) InventoryValue(ctx context.Context) (*dto.Envelope[dto.InventoryValue], error) {
	return call[dto.Envelope[dto.InventoryValue]](ctx, r.d, http.MethodGet, "/reports/inventory-value", nil, nil)
}

func (r *ReportsAPI) DashboardStats(ctx context.Context) (*dto.Envelope[dto.DashboardStats], error) {
	return call[dto.Envelope[dto.DashboardStats]](ctx, r.d, http.MethodGet, "/reports/dashboard-stats", nil, nil)
}

func positive(key string, n int) url.Values {
	if n <= 0 {
		return nil
	}
	return url.Values{key: {strconv.Itoa(n)}}
}
