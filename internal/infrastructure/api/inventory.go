package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
)

// InventoryAPI endpoints /inventory.
type InventoryAPI struct{ d Doer }

func (i *InventoryAPI) List(ctx context.Context, f dto.InventoryFilters) (*dto.Paginated[dto.InventoryDetails], error) {
	return call[dto.Paginated[dto.InventoryDetails]](ctx, i.d, http.MethodGet, "/inventory", f.Query(), nil)
}

func (i *InventoryAPI) GetByProduct(ctx context.Context, productID string) (*dto.Envelope[[]dto.InventoryDetails], error) {
	return call[dto.Envelope[[]dto.InventoryDetails]](ctx, i.d, http.MethodGet, idPath("/inventory/product", productID), nil, nil)
}

// Add POST /inventory/add (entrada de unidades a un lote).
func (i *InventoryAPI) Add(ctx context.Context, in dto.MovementRequest) (*dto.Envelope[entity.Inventory], error) {
	return call[dto.Envelope[entity.Inventory]](ctx, i.d, http.MethodPost, "/inventory/add", nil, in)
}

// Reduce POST /inventory/reduce (salida de unidades de un lote).
func (i *InventoryAPI) Reduce(ctx context.Context, in dto.MovementRequest) (*dto.Envelope[entity.Inventory], error) {
	return call[dto.Envelope[entity.Inventory]](ctx, i.d, http.MethodPost, "/inventory/reduce", nil, in)
}

func (i *InventoryAPI) Logs(ctx context.Context, f dto.LogFilters) (*dto.Paginated[entity.InventoryLog], error) {
	return call[dto.Paginated[entity.InventoryLog]](ctx, i.d, http.MethodGet, "/inventory/logs", f.Query(), nil)
}
