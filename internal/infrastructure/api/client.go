// Package api traduce operaciones de dominio a verbos, rutas y cuerpos HTTP del
// backend. No contiene lógica de negocio ni reintentos: los fallos son los del gateway.
package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
)

// Doer contrato mínimo del gateway que necesita el cliente.
// Lo implementa *gateway.Gateway.
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Ack respuesta sin datos relevantes (logout, delete).
type Ack = dto.Envelope[json.RawMessage]

// Client superficie tipada agrupada por recurso.
type Client struct {
	Auth      *AuthAPI
	Products  *ProductsAPI
	Units     *UnitsAPI
	Inventory *InventoryAPI
	Batches   *BatchesAPI
	Reports   *ReportsAPI
}

// New construye el cliente sobre d.
func New(d Doer) *Client {
	return &Client{
		Auth:      &AuthAPI{d: d},
		Products:  &ProductsAPI{d: d},
		Units:     &UnitsAPI{d: d},
		Inventory: &InventoryAPI{d: d},
		Batches:   &BatchesAPI{d: d},
		Reports:   &ReportsAPI{d: d},
	}
}

func call[T any](ctx context.Context, d Doer, method, path string, query url.Values, body any) (*T, error) {
	var out T
	if err := d.Do(ctx, method, path, query, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func idPath(prefix, id string) string {
	return prefix + "/" + url.PathEscape(id)
}
