package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
)

// UnitsAPI endpoints /units.
type UnitsAPI struct{ d Doer }

func (u *UnitsAPI) List(ctx context.Context) (*dto.Envelope[[]entity.ProductUnit], error) {
	return call[dto.Envelope[[]entity.ProductUnit]](ctx, u.d, http.MethodGet, "/units", nil, nil)
}

func (u *UnitsAPI) Create(ctx context.Context, in dto.UnitRequest) (*dto.Envelope[entity.ProductUnit], error) {
	return call[dto.Envelope[entity.ProductUnit]](ctx, u.d, http.MethodPost, "/units", nil, in)
}

// Update PUT: reemplaza nombre y abreviatura.
func (u *UnitsAPI) Update(ctx context.Context, id string, in dto.UnitRequest) (*dto.Envelope[entity.ProductUnit], error) {
	return call[dto.Envelope[entity.ProductUnit]](ctx, u.d, http.MethodPut, idPath("/units", id), nil, in)
}

func (u *UnitsAPI) Delete(ctx context.Context, id string) error {
	_, err := call[Ack](ctx, u.d, http.MethodDelete, idPath("/units", id), nil, nil)
	return err
}
