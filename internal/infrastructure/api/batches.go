package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
)

// BatchesAPI endpoints /batches.
type BatchesAPI struct{ d Doer }

func (b *BatchesAPI) Create(ctx context.Context, in dto.CreateBatchRequest) (*dto.Envelope[entity.Batch], error) {
	return call[dto.Envelope[entity.Batch]](ctx, b.d, http.MethodPost, "/batches", nil, in)
}

func (b *BatchesAPI) Get(ctx context.Context, id string) (*dto.Envelope[entity.Batch], error) {
	return call[dto.Envelope[entity.Batch]](ctx, b.d, http.MethodGet, idPath("/batches", id), nil, nil)
}

func (b *BatchesAPI) Update(ctx context.Context, id string, in dto.UpdateBatchRequest) (*dto.Envelope[entity.Batch], error) {
	return call[dto.Envelope[entity.Batch]](ctx, b.d, http.MethodPut, idPath("/batches", id), nil, in)
}
