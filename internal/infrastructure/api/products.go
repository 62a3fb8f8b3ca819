package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
)

// ProductsAPI endpoints /products.
type ProductsAPI struct{ d Doer }

func (p *ProductsAPI) List(ctx context.Context, f dto.ProductFilters) (*dto.Paginated[entity.Product], error) {
	return call[dto.Paginated[entity.Product]](ctx, p.d, http.MethodGet, "/products", f.Query(), nil)
}

func (p *ProductsAPI) Get(ctx context.Context, id string) (*dto.Envelope[entity.Product], error) {
	return call[dto.Envelope[entity.Product]](ctx, p.d, http.MethodGet, idPath("/products", id), nil, nil)
}

func (p *ProductsAPI) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.Envelope[entity.Product], error) {
	return call[dto.Envelope[entity.Product]](ctx, p.d, http.MethodPost, "/products", nil, in)
}

// Update PATCH parcial: solo se envían los campos no nulos de in.
func (p *ProductsAPI) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.Envelope[entity.Product], error) {
	return call[dto.Envelope[entity.Product]](ctx, p.d, http.MethodPatch, idPath("/products", id), nil, in)
}

func (p *ProductsAPI) Delete(ctx context.Context, id string) error {
	_, err := call[Ack](ctx, p.d, http.MethodDelete, idPath("/products", id), nil, nil)
	return err
}

// Search GET /products/search?q=... (q va codificado).
func (p *ProductsAPI) Search(ctx context.Context, query string) (*dto.Envelope[[]entity.Product], error) {
	return call[dto.Envelope[[]entity.Product]](ctx, p.d, http.MethodGet, "/products/search", url.Values{"q": {query}}, nil)
}
